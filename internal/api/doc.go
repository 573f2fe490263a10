// Package api is the REST client for the bialog backend.
//
// Every call takes a context, reads the bearer token from the injected
// session.Provider at request time and reports failures as *FetchError.
package api
