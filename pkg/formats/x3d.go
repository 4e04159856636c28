package formats

import (
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/geomconv/pkg/encoding"
	"github.com/Faultbox/geomconv/pkg/geometry"
)

// X3D text header values.
const (
	X3DVersion = "3.3"
	X3DProfile = "Interchange"
)

// WriteX3DV writes the scene in classic VRML encoding.
func WriteX3DV(w io.Writer, scene *geometry.Scene) error {
	tw := encoding.NewTextWriter(w)
	tw.Header(X3DVersion, X3DProfile)
	scene.Encode(tw)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing x3dv: %w", err)
	}
	return nil
}

// WriteX3DB writes the scene as a tagged binary stream.
func WriteX3DB(w io.Writer, scene *geometry.Scene) error {
	bw := encoding.NewBinaryWriter(w)
	scene.Encode(bw)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing x3db: %w", err)
	}
	return nil
}

// WriteFile writes the scene to path in the given format: x3dv, x3db, glb
// or yaml.
func WriteFile(scene *geometry.Scene, path, format, generator string) error {
	if !ValidFormat(format) {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if format == FormatGLB {
		return WriteGLB(scene, path, generator)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()

	switch format {
	case FormatX3DV:
		err = WriteX3DV(f, scene)
	case FormatX3DB:
		err = WriteX3DB(f, scene)
	case FormatYAML:
		var data []byte
		if data, err = MarshalScene(scene); err == nil {
			_, err = f.Write(data)
		}
	}
	if err != nil {
		return err
	}
	return f.Close()
}
