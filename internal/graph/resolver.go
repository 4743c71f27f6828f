package graph

import (
	"net/http"

	"storefront-be/internal/storefront"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/transport"
)

type Resolver struct {
	App *storefront.App
}

type queryResolver struct{ *Resolver }

type mutationResolver struct{ *Resolver }

func (r *Resolver) Query() *queryResolver { return &queryResolver{r} }

func (r *Resolver) Mutation() *mutationResolver { return &mutationResolver{r} }

func NewSchema(r *Resolver) graphql.ExecutableSchema {
	return newExecutableSchema(r)
}

// NewHandler serves the schema over GET and POST.
func NewHandler(r *Resolver) http.Handler {
	srv := handler.New(NewSchema(r))
	srv.AddTransport(transport.Options{})
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})
	return srv
}
