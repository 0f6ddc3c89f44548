package renderer

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"golang.org/x/xerrors"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter; 0 is a pinhole
	FocusDistance float64   // Distance to the focal plane; 0 means |LookAt - Center|
	Time0, Time1  float64   // Shutter interval
}

// Camera generates rays through a thin lens
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
	time0, time1    float64
}

// NewCamera creates a positionable thin-lens camera
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	theta := core.DegreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		time0:           config.Time0,
		time1:           config.Time1,
	}, nil
}

func (config CameraConfig) validate() error {
	switch {
	case config.VFov <= 0 || config.VFov >= 180:
		return xerrors.Errorf("camera vfov %v outside (0, 180): %w", config.VFov, core.ErrInvalidConfig)
	case config.AspectRatio <= 0:
		return xerrors.Errorf("camera aspect ratio %v must be positive: %w", config.AspectRatio, core.ErrInvalidConfig)
	case config.Aperture < 0 || config.FocusDistance < 0:
		return xerrors.Errorf("camera aperture and focus distance must not be negative: %w", core.ErrInvalidConfig)
	case config.Time1 < config.Time0:
		return xerrors.Errorf("camera shutter closes before it opens: %w", core.ErrInvalidConfig)
	}

	view := config.Center.Subtract(config.LookAt)
	if view.NearZero() {
		return xerrors.Errorf("camera center and look-at point coincide: %w", core.ErrInvalidConfig)
	}
	if config.Up.Cross(view).NearZero() {
		return xerrors.Errorf("camera up vector is parallel to the view direction: %w", core.ErrInvalidConfig)
	}
	return nil
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1.
// (0,0) is the lower left corner of the image.
func (c *Camera) GetRay(s, t float64, random *rand.Rand) core.Ray {
	var offset core.Vec3
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(random).Multiply(c.lensRadius)
		offset = c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
	}

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	time := c.time0
	if c.time1 > c.time0 {
		time = core.RandomFloat(random, c.time0, c.time1)
	}

	return core.NewRay(origin, direction, time)
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}
