/*
Package router wires prestapp's routes to their handlers with [gorilla/mux].

A [Router] registers a standardized data model, a [Route]:
a path and an HTTP method paired to the handler called when a request matches.
Before a request gets to a handler, the middlewares added to the Router
and then the Route are called in the order they appear.

Many routes share identical middleware stacks, and small mistakes can register a route
without the authentication check it needs.
UnauthedRoutes and AuthedRoutes register whole groups of routes
on the correct side of that barrier in a single call.

[gorilla/mux]: https://github.com/gorilla/mux
*/
package router
