package rendergraph

import "github.com/gogpu/gputypes"

// DependentValue is a texture specification field that either holds a
// fixed value or mirrors the same field of another texture version.
//
// The zero value is a fixed zero value.
type DependentValue[T comparable] struct {
	value      T
	dependency TextureVersionID
	dependent  bool
}

// Fixed returns an independent value.
func Fixed[T comparable](v T) DependentValue[T] {
	return DependentValue[T]{value: v, dependency: InvalidTextureVersion}
}

// DependsOn returns a value mirroring the corresponding field of id.
// The mirrored value is refreshed on every compile.
func DependsOn[T comparable](id TextureVersionID) DependentValue[T] {
	return DependentValue[T]{dependency: id, dependent: true}
}

// Value returns the current value. For a dependent value this is the value
// mirrored at the last resolution.
func (v DependentValue[T]) Value() T {
	return v.value
}

// Dependency returns the version id v mirrors, if any.
func (v DependentValue[T]) Dependency() (TextureVersionID, bool) {
	return v.dependency, v.dependent
}

// mirror stores the dependency's value and reports whether it changed.
func (v *DependentValue[T]) mirror(dep T) bool {
	if v.value == dep {
		return false
	}
	v.value = dep
	return true
}

// DynamicTextureSpec is a texture specification whose fields may depend on
// other textures.
type DynamicTextureSpec struct {
	Format      DependentValue[gputypes.TextureFormat]
	Width       DependentValue[uint32]
	Height      DependentValue[uint32]
	SampleCount DependentValue[uint32]
}

// SpecOf returns a dynamic specification with every field fixed to s.
func SpecOf(s TextureSpec) DynamicTextureSpec {
	return DynamicTextureSpec{
		Format:      Fixed(s.Format),
		Width:       Fixed(s.Width),
		Height:      Fixed(s.Height),
		SampleCount: Fixed(s.SampleCount),
	}
}

// MatchSpec returns a dynamic specification mirroring every field of id.
func MatchSpec(id TextureVersionID) DynamicTextureSpec {
	return DynamicTextureSpec{
		Format:      DependsOn[gputypes.TextureFormat](id),
		Width:       DependsOn[uint32](id),
		Height:      DependsOn[uint32](id),
		SampleCount: DependsOn[uint32](id),
	}
}

// MatchSize returns a single-sampled specification of the given format whose
// size mirrors id. This is the usual shape of post-process targets.
func MatchSize(id TextureVersionID, format gputypes.TextureFormat) DynamicTextureSpec {
	return DynamicTextureSpec{
		Format:      Fixed(format),
		Width:       DependsOn[uint32](id),
		Height:      DependsOn[uint32](id),
		SampleCount: Fixed[uint32](1),
	}
}

// Resolved returns the current field values. A zero sample count resolves
// to one.
func (s DynamicTextureSpec) Resolved() TextureSpec {
	spec := TextureSpec{
		Format:      s.Format.Value(),
		Width:       s.Width.Value(),
		Height:      s.Height.Value(),
		SampleCount: s.SampleCount.Value(),
	}
	if spec.SampleCount == 0 {
		spec.SampleCount = 1
	}
	return spec
}

// dependent reports whether any field has a dependency.
func (s DynamicTextureSpec) dependent() bool {
	return s.Format.dependent || s.Width.dependent ||
		s.Height.dependent || s.SampleCount.dependent
}

// dependencies returns the version ids the fields depend on.
func (s DynamicTextureSpec) dependencies() []TextureVersionID {
	var deps []TextureVersionID
	if id, ok := s.Format.Dependency(); ok {
		deps = append(deps, id)
	}
	if id, ok := s.Width.Dependency(); ok {
		deps = append(deps, id)
	}
	if id, ok := s.Height.Dependency(); ok {
		deps = append(deps, id)
	}
	if id, ok := s.SampleCount.Dependency(); ok {
		deps = append(deps, id)
	}
	return deps
}
