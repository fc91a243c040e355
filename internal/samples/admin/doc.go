// Package admin holds the Admin SDK quickstarts: Directory, Reports and Reseller.
//
// They need an administrator's user token or a service account with
// domain-wide delegation impersonating one (see --subject).
package admin
