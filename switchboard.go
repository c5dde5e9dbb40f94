// Package switchboard is a client for web services that publish their
// callable endpoints as a catalog of named URL templates.
//
// The service's configuration document maps logical endpoint names to
// URL templates. A Client fetches that catalog once, signs a user in
// with form-encoded credentials, and resolves endpoint names to
// concrete URLs by binding template parameters, auto-filling the
// signed-in user's unit number where a template asks for one.
//
// Example usage:
//
//	client, err := switchboard.New(ctx,
//	    switchboard.WithCredentials(username, password),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.SignOut(ctx)
//
//	// GET an endpoint, binding template parameters
//	resp, err := client.Get(ctx, "member-photo",
//	    switchboard.Args("individual"),
//	    switchboard.Param("member", 42),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var photo struct {
//	    URI string `json:"uri"`
//	}
//	if err := resp.JSON(&photo); err != nil {
//	    log.Fatal(err)
//	}
//
// For one-shot work, the scoped helper signs in, runs a function, and
// always signs out:
//
//	err := switchboard.WithSession(ctx, username, password, func(c *switchboard.Client) error {
//	    resp, err := c.Get(ctx, "current-user-detail")
//	    if err != nil {
//	        return err
//	    }
//	    return resp.JSON(&detail)
//	})
package switchboard

// DefaultCatalogURL is the versioned configuration document the client
// fetches when no other catalog source is configured.
const DefaultCatalogURL = "https://tools.unitworks.io/config/v2/endpoints.json"

// Well-known endpoint names the client itself consumes. The catalog is
// free to omit any of them; the operations that need them degrade as
// documented.
const (
	// EndpointAuth is the sign-in endpoint, taking a form-encoded POST
	// of username and password.
	EndpointAuth = "auth-url"

	// EndpointSignOut ends the server-side session.
	EndpointSignOut = "signout-url"

	// EndpointUserUnit reports the signed-in user's unit number.
	EndpointUserUnit = "current-user-unit"
)
