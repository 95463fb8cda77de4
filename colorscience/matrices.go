package colorscience

// RGB is a linear-light color triple. It is the working type for every
// function in this package; conversion to and from the uniform buffer's
// packed Vec3 happens at the pipeline boundary.
type RGB struct {
	R, G, B float32
}

// Mat3 is a row-major 3x3 matrix applied to an RGB triple as a column vector.
type Mat3 [3][3]float32

// Apply returns m * c.
func (m Mat3) Apply(c RGB) RGB {
	return RGB{
		R: m[0][0]*c.R + m[0][1]*c.G + m[0][2]*c.B,
		G: m[1][0]*c.R + m[1][1]*c.G + m[1][2]*c.B,
		B: m[2][0]*c.R + m[2][1]*c.G + m[2][2]*c.B,
	}
}

// Mul returns a*b using standard matrix multiplication.
func (a Mat3) Mul(b Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// Rec709ToAP1 converts linear Rec.709 to ACES AP1 primaries (the working
// space for ACEScg/ACEScc/ACEScct and the RRT/ODT chain).
var Rec709ToAP1 = Mat3{
	{0.6131324224, 0.3395380992, 0.0474619808},
	{0.0701243808, 0.9163940392, 0.0134751680},
	{0.0206412260, 0.1095745600, 0.8697906560},
}

// AP1ToRec709 is the inverse of Rec709ToAP1.
var AP1ToRec709 = Mat3{
	{1.7048586800, -0.6217160600, -0.0832407976},
	{-0.1300768246, 1.1407357568, -0.0105510693},
	{-0.0239640489, -0.1289755972, 1.1529421710},
}

// Rec709ToRec2020 converts linear Rec.709 primaries to linear Rec.2020.
var Rec709ToRec2020 = Mat3{
	{0.6274040, 0.3292820, 0.0433136},
	{0.0690970, 0.9195400, 0.0113612},
	{0.0163916, 0.0880132, 0.8955950},
}

// Rec2020ToRec709 is the inverse of Rec709ToRec2020.
var Rec2020ToRec709 = Mat3{
	{1.6605, -0.5876, -0.0728},
	{-0.1246, 1.1329, -0.0083},
	{-0.0182, -0.1006, 1.1187},
}

// Rec2020ToAP1 converts linear Rec.2020 primaries to ACES AP1.
var Rec2020ToAP1 = Rec709ToAP1.Mul(Rec2020ToRec709)

// AP1ToRec2020 is the inverse path, used by the ACES 2.0 ODT's simple
// display-gamut matrix when the output family is Rec.2020.
var AP1ToRec2020 = Rec709ToRec2020.Mul(AP1ToRec709)

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func mapRGB(c RGB, f func(float32) float32) RGB {
	return RGB{f(c.R), f(c.G), f(c.B)}
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
