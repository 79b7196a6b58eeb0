package assets

import (
	"errors"
)

// Resolver tries its layers in order. It moves to the next layer only when
// the asset is missing; invalid names and read failures are returned as is.
type Resolver struct {
	layers []AssetLoader
}

// NewResolver layers loaders, highest priority first. Without layers it
// serves the embedded assets.
func NewResolver(layers ...AssetLoader) *Resolver {
	if len(layers) == 0 {
		layers = []AssetLoader{NewEmbeddedLoader()}
	}
	return &Resolver{layers: layers}
}

// NewAssetResolver puts the directory basePath in front of the embedded
// assets, so a site can override one template and keep the others. An empty
// basePath serves the embedded assets only.
func NewAssetResolver(basePath string) (*Resolver, error) {
	if basePath == "" {
		return NewResolver(), nil
	}

	dir, err := NewDirLoader(basePath)
	if err != nil {
		return nil, err
	}
	return NewResolver(dir, NewEmbeddedLoader()), nil
}

// LoadStyle returns the first layer's stylesheet called name.
func (r *Resolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

// LoadTemplate returns the first layer's template called name.
func (r *Resolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

func (r *Resolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, layer := range r.layers {
		var content string
		content, err = load(layer)
		if err == nil || !isNotFound(err) {
			return content, err
		}
	}
	return "", err
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}

var _ AssetLoader = (*Resolver)(nil)
