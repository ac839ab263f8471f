package materials

import (
	"github.com/chewxy/math32"

	"earth-render/core"
	"earth-render/math"
)

// CPU mirror of the Earth fragment shader, used to reason about and test the
// shading without a GPU.

const (
	// AxialTilt is the Earth's obliquity in degrees.
	AxialTilt float32 = 23.4
	// DayLength is the time step count of one full light revolution.
	DayLength float32 = 360
	// CloudPeriod is the time step count after which the cloud layer has
	// scrolled once around the globe.
	CloudPeriod float32 = 5120
	// HeightScale scales the bump map displacement in the vertex stage.
	HeightScale float32 = 0.005
)

var (
	NightTint      = core.Color{R: 1.0, G: 0.984, B: 0.78, A: 1.0}
	HighlightColor = core.Color{R: 0.93, G: 0.92, B: 0.90, A: 1.0}
	SkyColor       = core.Color{R: 0.471, G: 0.612, B: 0.831, A: 1.0}
	TwilightColor  = core.Color{R: 0.5, G: 0.0, B: 0.0, A: 1.0}
)

// SpecularTerm is the sharp highlight lobe D for dot = lightdir·normal.
// Zero whenever the surface faces away from the light.
func SpecularTerm(dot float32) float32 {
	if dot <= 0 {
		return 0
	}
	return max(4*math32.Pow(dot, 40), 0)
}

// RimTerm is the atmosphere rim weight R_out. The eye position stands in
// for the view direction, so it only holds for a body at the origin.
func RimTerm(eye, normal math.Vec3) float32 {
	return 1 - eye.Normalize().Dot(normal)
}

// DiffuseTerm is DN: twice the light cosine, clamped to [0,1].
func DiffuseTerm(dot float32) float32 {
	return min(max(dot*2, 0), 1)
}

// InTwilightBand reports whether DN falls strictly inside the terminator.
func InTwilightBand(dn float32) bool {
	return dn < 1 && dn > 0
}

// CloudOffset is the horizontal UV shift of the cloud layer at time t.
func CloudOffset(t float32) float32 {
	return -t / CloudPeriod
}

// CloudU is the cloud sample coordinate for surface u at time t, wrapped into
// [0,1) the way REPEAT wrapping does on the GPU.
func CloudU(u, t float32) float32 {
	x := u + CloudOffset(t)
	return x - math32.Floor(x)
}

// LightDirection is the direction toward the sun at time step t: a yaw of
// t/DayLength turns about +Y applied to (0,0,-1), then the axial tilt about +X.
func LightDirection(t float32) math.Vec3 {
	tilt := math.QuaternionFromAxisAngle(math.Vec3Right, -AxialTilt/360*2*math32.Pi)
	yaw := math.QuaternionFromAxisAngle(math.Vec3Up, -t/DayLength*2*math32.Pi)
	return tilt.RotateVector(yaw.RotateVector(math.Vec3Back))
}

// Samples are the texel values fetched for one fragment.
type Samples struct {
	Land     core.Color
	Specular core.Color
	Cloud    core.Color
	Night    core.Color
}

// ShadeFragment computes the final colour for a fragment with model-space
// normal, given the light direction and the camera eye position.
func ShadeFragment(s Samples, normal, lightdir, eye math.Vec3) core.Color {
	n := normal.Normalize()
	dot := lightdir.Dot(n)
	d := SpecularTerm(dot)
	rOut := RimTerm(eye, n)
	dn := DiffuseTerm(dot)

	nightSide := s.Night.Mul(NightTint).Mix(s.Land, 0.1)

	daySide := s.Land.
		MixColor(HighlightColor, s.Specular.Scale(d)).
		Mix(s.Cloud, 0.1).
		Mix(SkyColor, rOut)

	if InTwilightBand(dn) {
		return nightSide.Mix(TwilightColor, dn*0.1).Mix(daySide, dn)
	}
	return nightSide.Mix(daySide, dn)
}
