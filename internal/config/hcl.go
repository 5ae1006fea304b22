package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclFile is the top-level structure of an HCL builder file.
type hclFile struct {
	Version  *string       `hcl:"version,optional"`
	Package  *string       `hcl:"package,optional"`
	Support  *string       `hcl:"support,optional"`
	Builders []*hclBuilder `hcl:"builder,block"`
}

type hclBuilder struct {
	Type          string        `hcl:"type,label"`
	Package       *string       `hcl:"package,optional"`
	Output        *string       `hcl:"output,optional"`
	BuilderType   *hclName      `hcl:"builder_type,block"`
	BuilderMethod *hclName      `hcl:"builder_method,block"`
	BuildMethod   *hclName      `hcl:"build_method,block"`
	Into          *hclInto      `hcl:"into,block"`
	Imports       []*hclImport  `hcl:"import,block"`
	FieldDefaults *hclFieldBody `hcl:"field_defaults,block"`
	Fields        []*hclField   `hcl:"field,block"`
	Mutators      []*hclMutator `hcl:"mutator,block"`
}

type hclName struct {
	Name *string `hcl:"name,optional"`
	Vis  *string `hcl:"vis,optional"`
	Doc  *string `hcl:"doc,optional"`
}

type hclInto struct {
	Generic *bool   `hcl:"generic,optional"`
	Type    *string `hcl:"type,optional"`
	Func    *string `hcl:"func,optional"`
}

type hclImport struct {
	Path  string  `hcl:"path"`
	Alias *string `hcl:"alias,optional"`
}

// hclField keeps its body undecoded so it can share hclFieldBody with
// field_defaults.
type hclField struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// hclFieldBody keeps default as an expression: strings are Go source,
// numbers and bools become Go literals.
type hclFieldBody struct {
	Default                        hcl.Expression  `hcl:"default,optional"`
	DefaultZero                    *bool           `hcl:"default_zero,optional"`
	MutableDuringDefaultResolution *bool           `hcl:"mutable_during_default_resolution,optional"`
	ViaMutators                    *hclViaMutators `hcl:"via_mutators,block"`
	Setter                         *hclSetter      `hcl:"setter,block"`
	Mutators                       []*hclMutator   `hcl:"mutator,block"`
}

type hclViaMutators struct {
	Init hcl.Expression `hcl:"init,optional"`
}

type hclSetter struct {
	Skip        *bool         `hcl:"skip,optional"`
	StripOption *bool         `hcl:"strip_option,optional"`
	StripBool   *bool         `hcl:"strip_bool,optional"`
	AutoInto    *bool         `hcl:"auto_into,optional"`
	Name        *string       `hcl:"name,optional"`
	Prefix      *string       `hcl:"prefix,optional"`
	Suffix      *string       `hcl:"suffix,optional"`
	Vis         *string       `hcl:"vis,optional"`
	Doc         *string       `hcl:"doc,optional"`
	Deprecated  *string       `hcl:"deprecated,optional"`
	Transform   *hclTransform `hcl:"transform,block"`
}

type hclTransform struct {
	Params string `hcl:"params"`
	Body   string `hcl:"body"`
}

type hclMutator struct {
	Name     string   `hcl:"name,label"`
	Requires []string `hcl:"requires,optional"`
	Params   *string  `hcl:"params,optional"`
	Body     string   `hcl:"body"`
	Receiver *string  `hcl:"receiver,optional"`
	Vis      *string  `hcl:"vis,optional"`
	Doc      *string  `hcl:"doc,optional"`
}

// ParseHCL parses HCL data into a File. filename is used in error messages.
func ParseHCL(data []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()

	hclF, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed hclFile

	diags = gohcl.DecodeBody(hclF.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	f := &File{
		Version: deref(parsed.Version),
		Package: deref(parsed.Package),
		Support: deref(parsed.Support),
	}

	for _, hb := range parsed.Builders {
		b, err := hb.toBuilder(f)
		if err != nil {
			return nil, fmt.Errorf("HCL file %s: %w", filename, err)
		}

		f.Builders = append(f.Builders, b)
	}

	applyDefaults(f)

	return f, nil
}

func (hb *hclBuilder) toBuilder(f *File) (Builder, error) {
	b := Builder{
		Type:          hb.Type,
		Package:       deref(hb.Package),
		Output:        deref(hb.Output),
		BuilderType:   hb.BuilderType.toNameSetting(),
		BuilderMethod: hb.BuilderMethod.toNameSetting(),
		BuildMethod:   hb.BuildMethod.toNameSetting(),
	}

	if into := hb.Into; into != nil {
		switch {
		case into.Generic != nil && *into.Generic:
			b.Into = IntoSetting{Mode: IntoGeneric}
		case into.Type != nil:
			b.Into = IntoSetting{Mode: IntoFixed, Type: *into.Type, Func: deref(into.Func)}
		default:
			return b, fmt.Errorf("builder %q: into needs generic = true or a type", hb.Type)
		}
	}

	for _, imp := range hb.Imports {
		b.Imports = append(b.Imports, Import{Path: imp.Path, Alias: deref(imp.Alias)})
	}

	if hb.FieldDefaults != nil {
		opts, err := hb.FieldDefaults.toFieldOptions()
		if err != nil {
			return b, fmt.Errorf("field_defaults of builder %q: %w", hb.Type, err)
		}

		b.FieldDefaults = opts
	}

	for _, hf := range hb.Fields {
		if b.Fields == nil {
			b.Fields = make(map[string]FieldOptions)
		}

		if _, dup := b.Fields[hf.Name]; dup {
			f.Diagnostics.AddError("duplicate_field_block",
				fmt.Sprintf("field %q is configured more than once", hf.Name), hb.Type, hf.Name)

			continue
		}

		var body hclFieldBody
		if diags := gohcl.DecodeBody(hf.Body, nil, &body); diags.HasErrors() {
			return b, fmt.Errorf("field %q of builder %q: %w", hf.Name, hb.Type, diags)
		}

		opts, err := body.toFieldOptions()
		if err != nil {
			return b, fmt.Errorf("field %q of builder %q: %w", hf.Name, hb.Type, err)
		}

		b.Fields[hf.Name] = opts
	}

	for _, hm := range hb.Mutators {
		b.Mutators = append(b.Mutators, hm.toMutator())
	}

	return b, nil
}

func (n *hclName) toNameSetting() NameSetting {
	if n == nil {
		return NameSetting{}
	}

	return NameSetting{Name: deref(n.Name), Vis: deref(n.Vis), Doc: deref(n.Doc)}
}

func (fb *hclFieldBody) toFieldOptions() (FieldOptions, error) {
	opts := FieldOptions{
		DefaultZero:                    fb.DefaultZero,
		MutableDuringDefaultResolution: fb.MutableDuringDefaultResolution,
	}

	def, err := goSnippet(fb.Default)
	if err != nil {
		return opts, fmt.Errorf("default: %w", err)
	}

	opts.Default = def

	if fb.ViaMutators != nil {
		start, err := goSnippet(fb.ViaMutators.Init)
		if err != nil {
			return opts, fmt.Errorf("via_mutators.init: %w", err)
		}

		opts.ViaMutators = &ViaMutators{Enabled: true, Init: deref(start)}
	}

	if s := fb.Setter; s != nil {
		opts.Setter = SetterOptions{
			Skip:        s.Skip,
			StripOption: s.StripOption,
			StripBool:   s.StripBool,
			AutoInto:    s.AutoInto,
			Name:        s.Name,
			Prefix:      s.Prefix,
			Suffix:      s.Suffix,
			Vis:         s.Vis,
			Doc:         s.Doc,
			Deprecated:  s.Deprecated,
		}

		if s.Transform != nil {
			opts.Setter.Transform = &Transform{Params: s.Transform.Params, Body: s.Transform.Body}
		}
	}

	for _, hm := range fb.Mutators {
		opts.Mutators = append(opts.Mutators, hm.toMutator())
	}

	return opts, nil
}

// goSnippet converts a constant HCL expression into Go source. A string is
// taken verbatim; numbers and bools are rendered as Go literals. An absent
// attribute yields nil.
func goSnippet(expr hcl.Expression) (*string, error) {
	if expr == nil {
		return nil, nil
	}

	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}

	if v.IsNull() {
		return nil, nil
	}

	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value is not known")
	}

	var src string

	switch v.Type() {
	case cty.String:
		src = v.AsString()
	case cty.Number:
		src = v.AsBigFloat().Text('g', -1)
	case cty.Bool:
		src = "false"
		if v.True() {
			src = "true"
		}
	default:
		return nil, fmt.Errorf("expected a string, number or bool, got %s", v.Type().FriendlyName())
	}

	return &src, nil
}

func (hm *hclMutator) toMutator() Mutator {
	return Mutator{
		Name:     hm.Name,
		Requires: hm.Requires,
		Params:   deref(hm.Params),
		Body:     hm.Body,
		Receiver: deref(hm.Receiver),
		Vis:      deref(hm.Vis),
		Doc:      deref(hm.Doc),
	}
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}

	return *p
}
