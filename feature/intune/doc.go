// Package intune is the endpoint-management source collaborator.
//
// It authenticates against the Microsoft identity platform with the
// client-credentials grant, pulls managed devices and directory users
// from the Graph API following @odata.nextLink pagination, and exposes
// the devices as merge contributions plus the users as contact drafts.
package intune
