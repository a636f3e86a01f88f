// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Command gltfcurve attaches curve data to glTF files
// and inspects the result.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
