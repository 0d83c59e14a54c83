// Package storefront provides the shared building blocks for the storefront
// services: identity tokens and their validation, the authorization guard
// contract, the permission-gated order lifecycle, and the cart aggregation
// rules backed by a relational store.
//
// Each service (users, catalog, cart, orders, shipping) wires these pieces
// through the repositories in the repository package and the request guard in
// middleware/guard.
package storefront
