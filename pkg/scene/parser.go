package scene

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// The scene file parser is a recursive descent over the XML tag stream
// with a lookahead of one tag and no backtracking. Multiple occurrences
// of a tag overwrite the previous one; missing tags keep their defaults.

// Load reads the scene file at path and resolves every animated
// attribute at the given normalized scene time.
func Load(path string, time math.Scalar) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scene file: %w", err)
	}
	defer file.Close()

	return Parse(file, path, time)
}

// Parse reads a scene document from r. The path locates mesh and
// texture files referenced by the scene.
func Parse(r io.Reader, path string, time math.Scalar) (*Scene, error) {
	p := &parser{decoder: xml.NewDecoder(r), path: path, time: time}
	scene, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("scene file parse error at tag <%s>: %w", p.tagName, err)
	}
	return scene, nil
}

type parser struct {
	decoder *xml.Decoder
	path    string
	time    math.Scalar
	tagName string // last tag seen, for error context
}

type tag struct {
	name  string
	attrs map[string]string
	end   bool
}

func (p *parser) parse() (*Scene, error) {
	t, err := p.nextTag()
	if err != nil {
		return nil, err
	}
	if t.end || t.name != "scene" {
		return nil, fmt.Errorf("scene tag expected")
	}
	return p.tagScene(t)
}

func (p *parser) tagScene(root *tag) (*Scene, error) {
	scene := NewScene()
	scene.Path = p.path

	outputFile, err := p.attrString(root, "output_file")
	if err != nil {
		return nil, err
	}
	scene.OutputFile = outputFile
	if scene.Threads, err = p.attrUintDefault(root, "threads", scene.Threads); err != nil {
		return nil, err
	}

	for {
		t, err := p.nextTag()
		if err != nil {
			return nil, err
		}
		if t.end {
			if t.name == "scene" {
				break
			}
			return nil, fmt.Errorf("unexpected closing tag %s", t.name)
		}

		switch t.name {
		case "background_color":
			if scene.Background, err = p.leafColor(t); err != nil {
				return nil, err
			}
		case "animation":
			fps, err := p.attrScalar(t, "fps")
			if err != nil {
				return nil, err
			}
			length, err := p.attrScalar(t, "length")
			if err != nil {
				return nil, err
			}
			scene.FPS = fps
			scene.Frames = int(math.Ceil(length * fps))
			if err = p.skip(); err != nil {
				return nil, err
			}
		case "still":
			if scene.Time, err = p.attrScalar(t, "time"); err != nil {
				return nil, err
			}
			if err = p.skip(); err != nil {
				return nil, err
			}
		case "motionblur":
			subFrames, err := p.attrScalar(t, "subframes")
			if err != nil {
				return nil, err
			}
			scene.SubFrames = int(math.Ceil(subFrames))
			if err = p.skip(); err != nil {
				return nil, err
			}
		case "caustic":
			if scene.PhotonScanSteps, err = p.attrScalar(t, "steps"); err != nil {
				return nil, err
			}
			if scene.PhotonTextureSize, err = p.attrUint(t, "texture_size"); err != nil {
				return nil, err
			}
			if scene.PhotonFactor, err = p.attrScalar(t, "factor"); err != nil {
				return nil, err
			}
			if err = p.skip(); err != nil {
				return nil, err
			}
		case "camera":
			if scene.Camera, err = p.tagCamera(); err != nil {
				return nil, err
			}
		case "lights":
			if err = p.tagLights(scene); err != nil {
				return nil, err
			}
		case "surfaces":
			if scene.Objects, err = p.tagSurfaces(); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unknown tag in scene")
		}
	}

	for _, object := range scene.Objects {
		if object.Material.Dispersion != 0 {
			scene.Dispersion = true
			break
		}
	}
	return scene, nil
}

func (p *parser) tagCamera() (*core.Camera, error) {
	camera := core.NewCamera()
	for {
		t, err := p.nextTag()
		if err != nil {
			return nil, err
		}
		if t.end {
			if t.name == "camera" {
				return camera, nil
			}
			return nil, fmt.Errorf("unexpected closing tag %s", t.name)
		}

		switch t.name {
		case "position":
			v, err := p.leafVector3(t)
			if err != nil {
				return nil, err
			}
			camera.SetPosition(v)
		case "lookat":
			v, err := p.leafVector3(t)
			if err != nil {
				return nil, err
			}
			camera.SetLookAt(v)
		case "up":
			v, err := p.leafVector3(t)
			if err != nil {
				return nil, err
			}
			camera.SetUp(v)
		case "horizontal_fov":
			angle, err := p.attrScalar(t, "angle")
			if err != nil {
				return nil, err
			}
			camera.SetFov(math.Radians(angle))
			if err = p.skip(); err != nil {
				return nil, err
			}
		case "resolution":
			width, err := p.attrUint(t, "horizontal")
			if err != nil {
				return nil, err
			}
			height, err := p.attrUint(t, "vertical")
			if err != nil {
				return nil, err
			}
			camera.SetResolution(width, height)
			if err = p.skip(); err != nil {
				return nil, err
			}
		case "max_bounces":
			// parsed as a scalar so the bounce limit can be animated
			n, err := p.attrScalar(t, "n")
			if err != nil {
				return nil, err
			}
			camera.SetMaxBounces(int(math.Floor(n + 0.5)))
			if err = p.skip(); err != nil {
				return nil, err
			}
		case "supersampling":
			n, err := p.attrUint(t, "subpixels_peraxis")
			if err != nil {
				return nil, err
			}
			camera.SetSuperSampling(n)
			if err = p.skip(); err != nil {
				return nil, err
			}
		case "dof":
			focus, err := p.vector3(t)
			if err != nil {
				return nil, err
			}
			lensSize, err := p.attrScalar(t, "lenssize")
			if err != nil {
				return nil, err
			}
			camera.SetFocusPoint(focus)
			camera.SetLensSize(lensSize)
			if err = p.skip(); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unknown tag in camera")
		}
	}
}

func (p *parser) tagLights(scene *Scene) error {
	for {
		t, err := p.nextTag()
		if err != nil {
			return err
		}
		if t.end {
			if t.name == "lights" {
				return nil
			}
			return fmt.Errorf("unexpected closing tag %s", t.name)
		}

		switch t.name {
		case "ambient_light":
			light, err := p.tagLight(t)
			if err != nil {
				return err
			}
			scene.Ambient = light.Power
		case "parallel_light", "point_light":
			light, err := p.tagLight(t)
			if err != nil {
				return err
			}
			scene.Lights = append(scene.Lights, light)
		default:
			return fmt.Errorf("unknown tag in lights")
		}
	}
}

// tagLight handles <ambient_light>, <parallel_light> and <point_light>
func (p *parser) tagLight(open *tag) (core.Light, error) {
	var position math.Vec3
	var power core.Color

	for {
		t, err := p.nextTag()
		if err != nil {
			return core.Light{}, err
		}
		if t.end {
			if t.name == open.name {
				break
			}
			return core.Light{}, fmt.Errorf("unexpected closing tag %s", t.name)
		}

		switch t.name {
		case "color":
			if power, err = p.leafColor(t); err != nil {
				return core.Light{}, err
			}
		case "direction", "position":
			if position, err = p.leafVector3(t); err != nil {
				return core.Light{}, err
			}
		default:
			return core.Light{}, fmt.Errorf("unknown tag in %s", open.name)
		}
	}

	return core.Light{
		Parallel: open.name == "parallel_light",
		Position: position,
		Power:    power,
	}, nil
}

func (p *parser) tagSurfaces() ([]*geometry.Object, error) {
	var objects []*geometry.Object
	for {
		t, err := p.nextTag()
		if err != nil {
			return nil, err
		}
		if t.end {
			if t.name == "surfaces" {
				return objects, nil
			}
			return nil, fmt.Errorf("unexpected closing tag %s", t.name)
		}

		switch t.name {
		case "sphere":
			radius, err := p.attrScalar(t, "radius")
			if err != nil {
				return nil, err
			}
			info, err := p.tagObject(t)
			if err != nil {
				return nil, err
			}
			sphere := geometry.NewSphere(info.position, radius, info.transform)
			objects = append(objects, geometry.NewObject(sphere, info.material))

		case "mesh":
			name, err := p.attrString(t, "name")
			if err != nil {
				return nil, err
			}
			meshPath := filepath.Join(filepath.Dir(p.path), name)
			info, err := p.tagObject(t)
			if err != nil {
				return nil, err
			}
			triangles, err := loaders.LoadWavefront(meshPath, info.transform.ObjectToWorld, info.transform.Normals)
			if err != nil {
				return nil, err
			}
			for _, triangle := range triangles {
				objects = append(objects, geometry.NewObject(triangle, info.material))
			}

		case "julia":
			scale, err := p.attrScalar(t, "scale")
			if err != nil {
				return nil, err
			}
			var c math.Quaternion
			if c.R, err = p.attrScalar(t, "cr"); err != nil {
				return nil, err
			}
			if c.A, err = p.attrScalar(t, "ca"); err != nil {
				return nil, err
			}
			if c.B, err = p.attrScalar(t, "cb"); err != nil {
				return nil, err
			}
			if c.C, err = p.attrScalar(t, "cc"); err != nil {
				return nil, err
			}
			cutPlane, err := p.attrScalar(t, "cutplane")
			if err != nil {
				return nil, err
			}
			info, err := p.tagObject(t)
			if err != nil {
				return nil, err
			}
			julia := geometry.NewJulia(c, cutPlane, scale, info.position, info.transform)
			objects = append(objects, geometry.NewObject(julia, info.material))

		default:
			return nil, fmt.Errorf("unknown tag in surfaces")
		}
	}
}

type objectInfo struct {
	position  math.Vec3
	material  core.Material
	transform geometry.Transform
}

// tagObject reads the children shared by all surface types
func (p *parser) tagObject(open *tag) (objectInfo, error) {
	info := objectInfo{transform: geometry.NewTransform()}
	for {
		t, err := p.nextTag()
		if err != nil {
			return info, err
		}
		if t.end {
			if t.name == open.name {
				return info, nil
			}
			return info, fmt.Errorf("unexpected closing tag %s", t.name)
		}

		switch t.name {
		case "position":
			if info.position, err = p.leafVector3(t); err != nil {
				return info, err
			}
		case "material_solid", "material_textured":
			if info.material, err = p.tagMaterial(t); err != nil {
				return info, err
			}
		case "transform":
			if info.transform, err = p.tagTransform(); err != nil {
				return info, err
			}
		default:
			return info, fmt.Errorf("unknown tag in %s", open.name)
		}
	}
}

func (p *parser) tagMaterial(open *tag) (core.Material, error) {
	var material core.Material
	for {
		t, err := p.nextTag()
		if err != nil {
			return material, err
		}
		if t.end {
			if t.name == open.name {
				return material, nil
			}
			return material, fmt.Errorf("unexpected closing tag %s", t.name)
		}

		switch t.name {
		case "color":
			if material.Color, err = p.leafColor(t); err != nil {
				return material, err
			}
		case "texture":
			name, err := p.attrString(t, "name")
			if err != nil {
				return material, err
			}
			texturePath := filepath.Join(filepath.Dir(p.path), name)
			if material.Texture, err = loaders.LoadTexture(texturePath); err != nil {
				return material, err
			}
			if err = p.skip(); err != nil {
				return material, err
			}
		case "phong":
			if material.Ka, err = p.attrScalar(t, "ka"); err != nil {
				return material, err
			}
			if material.Kd, err = p.attrScalar(t, "kd"); err != nil {
				return material, err
			}
			if material.Ks, err = p.attrScalar(t, "ks"); err != nil {
				return material, err
			}
			if material.Exponent, err = p.attrScalar(t, "exponent"); err != nil {
				return material, err
			}
			if err = p.skip(); err != nil {
				return material, err
			}
		case "reflectance":
			if material.Reflectance, err = p.attrScalar(t, "r"); err != nil {
				return material, err
			}
			if err = p.skip(); err != nil {
				return material, err
			}
		case "transmittance":
			if material.Transmittance, err = p.attrScalar(t, "t"); err != nil {
				return material, err
			}
			if err = p.skip(); err != nil {
				return material, err
			}
		case "refraction":
			// complex index: refraction index + i * extinction coefficient
			iof, err := p.attrScalar(t, "iof")
			if err != nil {
				return material, err
			}
			ec, err := p.attrScalarDefault(t, "ec", 0)
			if err != nil {
				return material, err
			}
			material.Refraction = complex(iof, ec)
			if material.Dispersion, err = p.attrScalarDefault(t, "disp", 0); err != nil {
				return material, err
			}
			if err = p.skip(); err != nil {
				return material, err
			}
		default:
			return material, fmt.Errorf("unknown tag in %s", open.name)
		}
	}
}

func (p *parser) tagTransform() (geometry.Transform, error) {
	transform := geometry.NewTransform()
	for {
		t, err := p.nextTag()
		if err != nil {
			return transform, err
		}
		if t.end {
			if t.name == "transform" {
				return transform, nil
			}
			return transform, fmt.Errorf("unexpected closing tag %s", t.name)
		}

		switch t.name {
		case "translate":
			v, err := p.leafVector3(t)
			if err != nil {
				return transform, err
			}
			transform.ObjectToWorld = transform.ObjectToWorld.Multiply(math.Translation(v))
			transform.WorldToObject = math.Translation(v.Multiply(-1)).Multiply(transform.WorldToObject)

		case "scale":
			v, err := p.leafVector3(t)
			if err != nil {
				return transform, err
			}
			inverse := math.NewVec3(1/v.X, 1/v.Y, 1/v.Z)
			transform.ObjectToWorld = transform.ObjectToWorld.Multiply(math.Scale(v))
			transform.WorldToObject = math.Scale(inverse).Multiply(transform.WorldToObject)
			transform.Normals = transform.Normals.Multiply(math.Scale(inverse))

		case "rotateX", "rotateY", "rotateZ":
			theta, err := p.attrScalar(t, "theta")
			if err != nil {
				return transform, err
			}
			angle := math.Radians(theta)
			var rotation func(math.Scalar) math.Matrix34
			switch t.name {
			case "rotateX":
				rotation = math.RotationX
			case "rotateY":
				rotation = math.RotationY
			default:
				rotation = math.RotationZ
			}
			transform.ObjectToWorld = transform.ObjectToWorld.Multiply(rotation(angle))
			transform.WorldToObject = rotation(-angle).Multiply(transform.WorldToObject)
			transform.Normals = transform.Normals.Multiply(rotation(angle))
			if err = p.skip(); err != nil {
				return transform, err
			}

		default:
			return transform, fmt.Errorf("unknown tag in transform")
		}
	}
}

// leafColor reads a color from the current tag's attributes and
// consumes the element
func (p *parser) leafColor(t *tag) (core.Color, error) {
	r, err := p.attrScalar(t, "r")
	if err != nil {
		return core.Color{}, err
	}
	g, err := p.attrScalar(t, "g")
	if err != nil {
		return core.Color{}, err
	}
	b, err := p.attrScalar(t, "b")
	if err != nil {
		return core.Color{}, err
	}
	a, err := p.attrScalarDefault(t, "a", 1)
	if err != nil {
		return core.Color{}, err
	}
	if err = p.skip(); err != nil {
		return core.Color{}, err
	}
	return core.NewColor(r, g, b, a), nil
}

// leafVector3 reads x, y, z attributes and consumes the element
func (p *parser) leafVector3(t *tag) (math.Vec3, error) {
	v, err := p.vector3(t)
	if err != nil {
		return v, err
	}
	return v, p.skip()
}

func (p *parser) vector3(t *tag) (math.Vec3, error) {
	x, err := p.attrScalar(t, "x")
	if err != nil {
		return math.Vec3{}, err
	}
	y, err := p.attrScalar(t, "y")
	if err != nil {
		return math.Vec3{}, err
	}
	z, err := p.attrScalar(t, "z")
	if err != nil {
		return math.Vec3{}, err
	}
	return math.NewVec3(x, y, z), nil
}

func (p *parser) nextTag() (*tag, error) {
	for {
		token, err := p.decoder.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("unexpected end of scene file")
		}
		// the decoder reports end of input inside an open element as a
		// syntax error rather than io.EOF
		if syntaxErr, ok := err.(*xml.SyntaxError); ok && syntaxErr.Msg == "unexpected EOF" {
			return nil, fmt.Errorf("unexpected end of scene file")
		}
		if err != nil {
			return nil, err
		}

		switch element := token.(type) {
		case xml.StartElement:
			attrs := make(map[string]string, len(element.Attr))
			for _, attr := range element.Attr {
				attrs[attr.Name.Local] = attr.Value
			}
			p.tagName = element.Name.Local
			return &tag{name: element.Name.Local, attrs: attrs}, nil
		case xml.EndElement:
			p.tagName = element.Name.Local
			return &tag{name: element.Name.Local, end: true}, nil
		}
	}
}

// skip consumes tokens up to the end of the current start element
func (p *parser) skip() error {
	return p.decoder.Skip()
}

func (p *parser) attrString(t *tag, name string) (string, error) {
	value, ok := t.attrs[name]
	if !ok {
		return "", fmt.Errorf("missing attribute %q", name)
	}
	return value, nil
}

func (p *parser) attrScalar(t *tag, name string) (math.Scalar, error) {
	value, ok := t.attrs[name]
	if !ok {
		return 0, fmt.Errorf("missing attribute %q", name)
	}
	return EvaluateScalar(value, p.time)
}

func (p *parser) attrScalarDefault(t *tag, name string, defaultValue math.Scalar) (math.Scalar, error) {
	value, ok := t.attrs[name]
	if !ok {
		return defaultValue, nil
	}
	return EvaluateScalar(value, p.time)
}

func (p *parser) attrUint(t *tag, name string) (int, error) {
	value, ok := t.attrs[name]
	if !ok {
		return 0, fmt.Errorf("missing attribute %q", name)
	}
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid attribute %q: %w", name, err)
	}
	return int(n), nil
}

func (p *parser) attrUintDefault(t *tag, name string, defaultValue int) (int, error) {
	if _, ok := t.attrs[name]; !ok {
		return defaultValue, nil
	}
	return p.attrUint(t, name)
}
