package options

import (
	"fmt"
	"maps"
	"slices"

	"record-copier/internal/diagnostic"
	"record-copier/internal/match"
)

// Catalog lists the models and properties options are checked against.
type Catalog interface {
	ModelNames() []string
	// PropertyNames returns the declared attributes and relationships of model.
	PropertyNames(model string) []string
	RelationshipType(model, name string) (string, bool)
}

// Validate checks an options file against a catalog. Unknown models and
// relationship options on non-relationships are errors; other suspicious
// names are warnings, with a suggestion when one is close enough.
func Validate(f *File, catalog Catalog) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError(diagnostic.CodeUnknownModel, "options file is nil", "", "")
		return res
	}

	models := catalog.ModelNames()
	for _, model := range slices.Sorted(maps.Keys(f.Types)) {
		if !slices.Contains(models, model) {
			res.AddError(diagnostic.CodeUnknownModel,
				fmt.Sprintf("unknown model %q%s", model, match.Hint(model, models)), model, "")
			continue
		}

		opts := f.Types[model]
		validateOptions(res, catalog, model, model, &opts)
	}

	return res
}

// validateOptions checks opts applied to records of model. path names the
// options in messages, e.g. "Post.comments".
func validateOptions(res *diagnostic.Diagnostics, catalog Catalog, model, path string, opts *CopyOptions) {
	props := catalog.PropertyNames(model)

	checkNames := func(names []string, what string) {
		for _, name := range names {
			if !slices.Contains(props, name) {
				res.AddWarning(diagnostic.CodeUnknownProperty,
					fmt.Sprintf("%s names unknown property %q%s", what, name, match.Hint(name, props)), path, name)
			}
		}
	}

	checkNames(opts.IgnoreAttributes, "ignore_attributes")
	checkNames(opts.CopyByReference, "copy_by_reference")
	checkNames(slices.Sorted(maps.Keys(opts.Overwrite)), "overwrite")

	for _, name := range opts.OtherAttributes {
		if slices.Contains(props, name) {
			res.AddWarning(diagnostic.CodeDeclaredOther,
				fmt.Sprintf("other_attributes names declared property %q", name), path, name)
		}
	}

	for _, name := range slices.Sorted(maps.Keys(opts.Overwrite)) {
		if opts.Ignores(name) {
			res.AddInfo(diagnostic.CodeOverwriteIgnored,
				fmt.Sprintf("%q is ignored but still overwritten", name), path, name)
		}
	}

	for _, name := range slices.Sorted(maps.Keys(opts.Relationships)) {
		related, ok := catalog.RelationshipType(model, name)
		if !ok {
			if slices.Contains(props, name) {
				res.AddError(diagnostic.CodeNotARelationship,
					fmt.Sprintf("relationship options on attribute %q", name), path, name)
			} else {
				res.AddError(diagnostic.CodeUnknownProperty,
					fmt.Sprintf("relationship options on unknown relationship %q%s", name, match.Hint(name, props)),
					path, name)
			}

			continue
		}

		sub := opts.Relationships[name].CopyOptions
		validateOptions(res, catalog, related, path+"."+name, &sub)
	}
}
