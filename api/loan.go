package api

import (
	"net/http"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/http/resp"
)

// An emailQuery names whose resources to read.
// Left blank, it names the signed in user.
type emailQuery struct {
	Email string `json:"email" schema:"email" validate:"omitempty,email"`
}

// createLoan records the submitted loan application.
func (h *Handler) createLoan(w http.ResponseWriter, r *http.Request) {
	var app prestapp.LoanApplication
	if err := h.p.ParseBody(r.Body, &app); err != nil {
		h.d.Err(w, r, err)
		return
	}

	_, email, err := h.ownEmail(r, app.Email)
	if err != nil {
		h.forbid(w, r, err)
		return
	}

	app.Email = email
	loan := app.Loan()
	if err := h.loans.Create(r.Context(), &loan); err != nil {
		h.d.Err(w, r, err)
		return
	}

	if err := h.d.Json(w, r, resp.Code(http.StatusCreated), resp.Data(loan)); err != nil {
		h.d.Err(w, r, err)
	}
}

// listLoans responds with the loans applied for by an email, newest first.
//
// The email is read from the JSON body of a POST or the query params of a GET.
func (h *Handler) listLoans(w http.ResponseWriter, r *http.Request) {
	var q emailQuery
	var err error
	if r.Method == http.MethodGet {
		err = h.p.ParseQueryParams(r.URL.Query(), &q)
	} else {
		err = h.p.ParseBody(r.Body, &q)
	}

	if err != nil {
		h.d.Err(w, r, err)
		return
	}

	_, email, err := h.ownEmail(r, q.Email)
	if err != nil {
		h.forbid(w, r, err)
		return
	}

	loans, err := h.loans.ListByEmail(r.Context(), email)
	if err != nil {
		h.d.Err(w, r, err)
		return
	}

	if err := h.d.Json(w, r, resp.Data(loans)); err != nil {
		h.d.Err(w, r, err)
	}
}
