package orchestrator

import (
	"strings"

	"github.com/goliatone/go-codejson/pkg/schema"
)

// Heading is the page introduction shown above a compiled form.
type Heading struct {
	Page        string `json:"page"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PageHeading derives the heading for page. The default page reads as
// "Gov ... government teams"; agency pages use the upper-cased identifier.
func PageHeading(page string) Heading {
	page = strings.TrimSpace(page)
	if page == "" {
		page = schema.DefaultPage
	}

	agency := strings.ToUpper(page)
	audience := agency
	if page == schema.DefaultPage {
		agency = "Gov"
		audience = "government"
	}

	return Heading{
		Page:  page,
		Title: "Welcome to " + agency + " Code.json Generator!",
		Description: "code.json generator is a web form designed to help " + audience +
			" teams create a code.json file containing project metadata in compliance with the SHARE IT Act.",
	}
}
