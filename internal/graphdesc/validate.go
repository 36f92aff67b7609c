package graphdesc

import (
	"errors"
	"fmt"
)

// Validate checks that d can be built: names resolve to textures declared
// earlier, every pass has a color or depth/stencil attachment and resolve
// attachments pair with color attachments.
func (d *Description) Validate() error {
	if len(d.Passes) == 0 {
		return errors.New("description declares no passes")
	}
	known := make(map[string]bool)
	declare := func(where string, t Texture, imported bool) error {
		if t.Name == "" {
			return fmt.Errorf("%s: texture without a name", where)
		}
		if known[t.Name] {
			return fmt.Errorf("%s: texture %q declared twice", where, t.Name)
		}
		if err := t.validate(known, imported); err != nil {
			return fmt.Errorf("%s: texture %q: %w", where, t.Name, err)
		}
		known[t.Name] = true
		return nil
	}

	for i, t := range d.Imports {
		if err := declare(fmt.Sprintf("import #%d", i), t, true); err != nil {
			return err
		}
	}
	for i, p := range d.Passes {
		where := fmt.Sprintf("pass #%d %q", i, p.Name)
		if p.Name == "" {
			return fmt.Errorf("pass #%d: missing name", i)
		}
		for _, t := range p.Create {
			if err := declare(where, t, false); err != nil {
				return err
			}
		}
		for _, s := range p.Sampled {
			if !known[s] {
				return fmt.Errorf("%s: sampled texture %q is not declared", where, s)
			}
		}
		if p.DepthStencil == nil && len(p.Colors) == 0 {
			return fmt.Errorf("%s: neither color nor depth/stencil attachment", where)
		}
		if len(p.Resolves) > 0 && len(p.Resolves) != len(p.Colors) {
			return fmt.Errorf("%s: %d resolve attachments for %d color attachments",
				where, len(p.Resolves), len(p.Colors))
		}
		atts := append(append([]Attachment(nil), p.Colors...), p.Resolves...)
		if p.DepthStencil != nil {
			atts = append(atts, *p.DepthStencil)
		}
		for _, a := range atts {
			if err := a.validate(known); err != nil {
				return fmt.Errorf("%s: %w", where, err)
			}
		}
	}
	return nil
}

func (t Texture) validate(known map[string]bool, imported bool) error {
	if _, err := ParseLayout(t.FinalLayout); err != nil {
		return err
	}
	switch {
	case t.Match != "" && t.MatchSize != "":
		return errors.New("match and match_size are exclusive")
	case (t.Match != "" || t.MatchSize != "") && imported:
		return errors.New("imported textures must have a fixed size")
	case t.Match != "":
		if !known[t.Match] {
			return fmt.Errorf("match refers to undeclared texture %q", t.Match)
		}
		if t.Format != "" || t.Width != 0 || t.Height != 0 || t.Samples != 0 {
			return errors.New("match excludes format, width, height and samples")
		}
		return nil
	case t.MatchSize != "":
		if !known[t.MatchSize] {
			return fmt.Errorf("match_size refers to undeclared texture %q", t.MatchSize)
		}
		if t.Width != 0 || t.Height != 0 {
			return errors.New("match_size excludes width and height")
		}
	default:
		if t.Width == 0 || t.Height == 0 {
			return errors.New("width and height are required")
		}
	}
	_, err := ParseFormat(t.Format)
	return err
}

func (a Attachment) validate(known map[string]bool) error {
	if !known[a.Texture] {
		return fmt.Errorf("attachment refers to undeclared texture %q", a.Texture)
	}
	if _, err := parseLoad(a.Load); err != nil {
		return err
	}
	_, err := parseStore(a.Store)
	return err
}
