// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package export

import (
	"go.uber.org/multierr"

	"github.com/utsuboco/gltfcurve/curve"
	"github.com/utsuboco/gltfcurve/gltf"
)

// Attach attaches each payload to the node of f that has
// the same name, under curve.ExtensionName.
// It returns the names of payloads for which f has no
// node. Such payloads are skipped.
// When several nodes share a name, the first one is used.
func (e *Exporter) Attach(f *gltf.File, ps []*Payload) (missing []string, err error) {
	for _, p := range ps {
		i, ok := f.NodeIndex(p.Name)
		if !ok {
			e.log.Warn("no glTF node for curve", "object", p.Name)
			missing = append(missing, p.Name)
			continue
		}
		if aerr := f.Attach(i, curve.ExtensionName, p.Document); aerr != nil {
			e.log.Error("cannot attach curve", "object", p.Name, "node", i, "err", aerr)
			err = multierr.Append(err, aerr)
			continue
		}
		e.log.Debug("attached curve", "object", p.Name, "node", i, "splines", len(p.Document.Splines))
	}
	return
}
