// Package store reads and writes prestapp Users and Loans through a [*postgres.DB].
package store
