// Package models defines the domain types shared across invitado:
// the event Configuration aggregate edited by the generator and projected
// onto the invitation page, and the Guest records managed by the dashboard.
//
// JSON tags match the documents the hosted store already holds, so
// configurations and guests written by earlier versions of the site keep
// parsing.
package models
