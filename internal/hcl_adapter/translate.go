package hcl_adapter

import (
	"fmt"
	"time"

	"github.com/specialistvlad/superlumen/internal/config"
	"github.com/specialistvlad/superlumen/internal/errs"
)

// merge folds one decoded file into model. Networks are keyed by name; a
// later block with the same name replaces the earlier one.
func merge(model *config.Model, root *fileRoot) error {
	if root.TemplatesDir != "" {
		model.TemplatesDir = root.TemplatesDir
	}
	if root.DefaultView != "" {
		model.DefaultView = root.DefaultView
	}
	if h := root.Host; h != nil {
		if h.URL != "" {
			model.Host.URL = h.URL
		}
		if h.Namespace != "" {
			model.Host.Namespace = h.Namespace
		}
		if h.Timeout != "" {
			d, err := time.ParseDuration(h.Timeout)
			if err != nil {
				return fmt.Errorf("%w: host timeout: %v", errs.ErrInvalidArgument, err)
			}
			model.Host.Timeout = d
		}
		if h.InsecureSkipVerify {
			model.Host.InsecureSkipVerify = true
		}
	}
	for _, nb := range root.Networks {
		nw := translateNetwork(nb)
		replaced := false
		for i := range model.Networks {
			if model.Networks[i].Name == nw.Name {
				model.Networks[i] = nw
				replaced = true
				break
			}
		}
		if !replaced {
			model.Networks = append(model.Networks, nw)
		}
	}
	return nil
}

func translateNetwork(nb *networkBlock) config.Network {
	label := nb.Label
	if label == "" {
		label = nb.Name
	}
	return config.Network{
		Name:    nb.Name,
		Label:   label,
		URL:     nb.URL,
		Default: nb.Default,
	}
}
