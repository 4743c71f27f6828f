package graph

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

//go:embed schema.graphqls
var schemaSource string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSource})

// fieldFunc resolves one root field. Its result is rendered through JSON,
// so the JSON names of the returned value must match the schema.
type fieldFunc func(ctx context.Context, args arguments) (any, error)

type executableSchema struct {
	schema *ast.Schema
	fields map[string]fieldFunc
}

func newExecutableSchema(r *Resolver) *executableSchema {
	return &executableSchema{schema: parsedSchema, fields: rootFields(r)}
}

func (e *executableSchema) Schema() *ast.Schema {
	return e.schema
}

func (e *executableSchema) Complexity(ctx context.Context, typeName, fieldName string, childComplexity int, args map[string]any) (int, bool) {
	return 0, false
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	sent := false
	return func(ctx context.Context) *graphql.Response {
		if sent {
			return nil
		}
		sent = true
		return e.execute(ctx, opCtx)
	}
}

func (e *executableSchema) execute(ctx context.Context, opCtx *graphql.OperationContext) *graphql.Response {
	var root *ast.Definition
	switch op := opCtx.Operation.Operation; op {
	case ast.Query:
		root = e.schema.Query
	case ast.Mutation:
		root = e.schema.Mutation
	default:
		return &graphql.Response{Errors: gqlerror.List{gqlerror.Errorf("%s operations are not supported", op)}}
	}

	ex := &execution{
		schema: e.schema,
		doc:    opCtx.Doc,
		vars:   opCtx.Variables,
		fields: e.fields,
	}
	data := ex.selectObject(ctx, root, opCtx.Operation.SelectionSet, nil, ex.resolveRoot(ctx, root))

	raw, err := json.Marshal(data)
	if err != nil {
		return &graphql.Response{Errors: gqlerror.List{gqlerror.Errorf("encode response: %v", err)}}
	}
	return &graphql.Response{Data: raw, Errors: ex.errs}
}

// execution walks one operation. Root fields call resolvers in document
// order; everything below a root field is read from the resolver's result.
type execution struct {
	schema *ast.Schema
	doc    *ast.QueryDocument
	vars   map[string]any
	fields map[string]fieldFunc
	errs   gqlerror.List
}

type fieldValue func(f *ast.Field, path ast.Path) (any, error)

func (ex *execution) resolveRoot(ctx context.Context, root *ast.Definition) fieldValue {
	return func(f *ast.Field, path ast.Path) (any, error) {
		fn, ok := ex.fields[root.Name+"."+f.Name]
		if !ok {
			return nil, fmt.Errorf("no resolver for %s.%s", root.Name, f.Name)
		}
		v, err := fn(ctx, arguments(f.ArgumentMap(ex.vars)))
		if err != nil {
			return nil, err
		}
		return toGeneric(v)
	}
}

func (ex *execution) selectObject(ctx context.Context, def *ast.Definition, sel ast.SelectionSet, path ast.Path, value fieldValue) *object {
	out := newObject()
	for _, cf := range ex.collectFields(def, sel, map[string]bool{}) {
		fieldPath := append(slices.Clip(path), ast.PathName(cf.key))

		if cf.field.Name == "__typename" {
			out.set(cf.key, def.Name)
			continue
		}
		if strings.HasPrefix(cf.field.Name, "__") {
			ex.errs = append(ex.errs, toGQLError(ctx, ErrNoIntrospection, fieldPath))
			out.set(cf.key, nil)
			continue
		}
		fd := def.Fields.ForName(cf.field.Name)
		if fd == nil {
			out.set(cf.key, nil)
			continue
		}

		v, err := value(cf.field, fieldPath)
		if err != nil {
			ex.errs = append(ex.errs, toGQLError(ctx, err, fieldPath))
			out.set(cf.key, nil)
			continue
		}
		out.set(cf.key, ex.complete(ctx, fd.Type, v, cf.selections, fieldPath))
	}
	return out
}

// complete shapes v, a decoded JSON value, to typ and the selection set.
func (ex *execution) complete(ctx context.Context, typ *ast.Type, v any, sel ast.SelectionSet, path ast.Path) any {
	if v == nil {
		if typ.NonNull {
			ex.errs = append(ex.errs, gqlerror.ErrorPathf(path, "must not be null"))
		}
		return nil
	}

	if typ.Elem != nil {
		list, ok := v.([]any)
		if !ok {
			ex.errs = append(ex.errs, gqlerror.ErrorPathf(path, "expected a list"))
			return nil
		}
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = ex.complete(ctx, typ.Elem, item, sel, append(slices.Clip(path), ast.PathIndex(i)))
		}
		return out
	}

	def := ex.schema.Types[typ.NamedType]
	switch def.Kind {
	case ast.Object:
		m, ok := v.(map[string]any)
		if !ok {
			ex.errs = append(ex.errs, gqlerror.ErrorPathf(path, "expected an object"))
			return nil
		}
		return ex.selectObject(ctx, def, sel, path, func(f *ast.Field, _ ast.Path) (any, error) {
			return m[f.Name], nil
		})
	case ast.Scalar, ast.Enum:
		return completeScalar(def.Name, v)
	}
	ex.errs = append(ex.errs, gqlerror.ErrorPathf(path, "unsupported type %s", def.Name))
	return nil
}

func completeScalar(name string, v any) any {
	if name == "ID" {
		if n, ok := v.(json.Number); ok {
			return n.String()
		}
	}
	return v
}

type collectedField struct {
	key        string
	field      *ast.Field
	selections ast.SelectionSet
}

// collectFields flattens fragments and groups fields by response key.
func (ex *execution) collectFields(def *ast.Definition, sel ast.SelectionSet, visited map[string]bool) []*collectedField {
	var out []*collectedField
	index := map[string]*collectedField{}

	var walk func(ast.SelectionSet)
	walk = func(sel ast.SelectionSet) {
		for _, s := range sel {
			switch s := s.(type) {
			case *ast.Field:
				if !ex.included(s.Directives) {
					continue
				}
				key := s.Alias
				if key == "" {
					key = s.Name
				}
				if cf, ok := index[key]; ok {
					cf.selections = append(slices.Clip(cf.selections), s.SelectionSet...)
					continue
				}
				cf := &collectedField{key: key, field: s, selections: s.SelectionSet}
				index[key] = cf
				out = append(out, cf)
			case *ast.InlineFragment:
				if !ex.included(s.Directives) || (s.TypeCondition != "" && s.TypeCondition != def.Name) {
					continue
				}
				walk(s.SelectionSet)
			case *ast.FragmentSpread:
				if !ex.included(s.Directives) || visited[s.Name] {
					continue
				}
				visited[s.Name] = true
				frag := s.Definition
				if frag == nil {
					frag = ex.doc.Fragments.ForName(s.Name)
				}
				if frag == nil || frag.TypeCondition != def.Name {
					continue
				}
				walk(frag.SelectionSet)
			}
		}
	}
	walk(sel)
	return out
}

// included applies @skip and @include.
func (ex *execution) included(dirs ast.DirectiveList) bool {
	if d := dirs.ForName("skip"); d != nil && ex.directiveIf(d) {
		return false
	}
	if d := dirs.ForName("include"); d != nil && !ex.directiveIf(d) {
		return false
	}
	return true
}

func (ex *execution) directiveIf(d *ast.Directive) bool {
	arg := d.Arguments.ForName("if")
	if arg == nil {
		return false
	}
	v, err := arg.Value.Value(ex.vars)
	return err == nil && v == true
}

// toGeneric renders v through JSON, keeping numbers exact.
func toGeneric(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// object is a JSON object that keeps the order fields were selected in.
type object struct {
	keys   []string
	values map[string]any
}

func newObject() *object {
	return &object{values: map[string]any{}}
}

func (o *object) set(key string, v any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
