// Package derive is the shared front-end every format package builds on:
// Plan (reflection walked once per type and cached), the union and proxy
// registries, container default resolution, ToIR/FromIR conversion to and
// from the shared ir.Value tree, and colorized syntax-error rendering.
//
// No format package (json, ron, binary, toml) reads struct tags or
// builds Go values itself: they use reflect.Type only to steer decoding,
// and get field lists from PlanOf and values from ToIR and FromIR.
package derive
