package switchboard_test

import (
	"context"
	"fmt"
	"log"

	"github.com/unitworks/switchboard"
	"github.com/unitworks/switchboard/pkg/catalog"
)

// An injected catalog keeps examples and tests off the network.
func ExampleClient_Resolve() {
	cat := catalog.New(catalog.WithSource("example"))
	tmpl := catalog.MustParseTemplate("https://service.example/photos/{type}/{member}")
	if err := cat.Set("member-photo", catalog.NewDescriptor("member-photo", tmpl, []string{"type", "member"})); err != nil {
		log.Fatal(err)
	}

	client, err := switchboard.New(context.Background(), switchboard.WithCatalog(cat))
	if err != nil {
		log.Fatal(err)
	}

	url, err := client.Resolve("member-photo",
		switchboard.Args("individual"),
		switchboard.Param("member", 42),
	)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(url)
	// Output: https://service.example/photos/individual/42
}

func ExampleClient_Resolve_missingParameters() {
	cat := catalog.New(catalog.WithSource("example"))
	tmpl := catalog.MustParseTemplate("https://service.example/units/{unit}/members")
	if err := cat.Set("unit-members", catalog.NewDescriptor("unit-members", tmpl, nil)); err != nil {
		log.Fatal(err)
	}

	client, err := switchboard.New(context.Background(), switchboard.WithCatalog(cat))
	if err != nil {
		log.Fatal(err)
	}

	_, err = client.Resolve("unit-members")
	fmt.Println(err)
	// Output: endpoint "unit-members" needs arguments: unit
}
