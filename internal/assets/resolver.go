package assets

import "errors"

// AssetResolver asks its loaders in order. A loader missing the asset hands
// over to the next one; any other error ends the search, so an invalid name
// or an unreadable override never silently falls back to the embedded copy.
type AssetResolver struct {
	loaders []AssetLoader
}

var _ AssetLoader = (*AssetResolver)(nil)

// NewAssetResolver puts the directory customBasePath, when set, in front of
// the embedded assets.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customBasePath != "" {
		dir, err := NewDirLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.loaders = append(r.loaders, dir)
	}
	r.loaders = append(r.loaders, defaultLoader)
	return r, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.loaders {
		var content string
		content, err = load(l)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
			return "", err
		}
	}
	return "", err
}
