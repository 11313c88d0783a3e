package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixProject = "proj"
	PrefixAsset   = "asset"
	PrefixShape   = "shape"
	PrefixGroup   = "group"
	PrefixClient  = "client"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewProjectID() string { return New(PrefixProject) }
func NewAssetID() string   { return New(PrefixAsset) }
func NewShapeID() string   { return New(PrefixShape) }
func NewGroupID() string   { return New(PrefixGroup) }
func NewClientID() string  { return New(PrefixClient) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
