package quantum

// parallelThreshold is the grid size above which the 2D stencil fans
// out across workers.
const parallelThreshold = 4096

// Laplacian writes the central-difference Laplacian of psi into dst.
//
// In 1D the end points are left zero. In 2D each axis contributes its
// second difference only on that axis's interior, so edge rows and
// columns keep the tangential term alone and corners stay zero.
func Laplacian(dst, psi State, g *Grid) {
	switch g.Dim() {
	case 1:
		laplacian1D(dst, psi, g.Deltas[0])
	case 2:
		laplacian2D(dst, psi, g)
	}
}

func laplacian1D(dst, psi State, dx float64) {
	n := len(psi)
	inv := complex(1/(dx*dx), 0)
	dst[0] = 0
	dst[n-1] = 0
	for i := 1; i < n-1; i++ {
		dst[i] = (psi[i+1] - 2*psi[i] + psi[i-1]) * inv
	}
}

func laplacian2D(dst, psi State, g *Grid) {
	nx, ny := g.Shape[0], g.Shape[1]
	inv0 := complex(1/(g.Deltas[0]*g.Deltas[0]), 0)
	inv1 := complex(1/(g.Deltas[1]*g.Deltas[1]), 0)

	rows := func(lo, hi int) {
		for ix := lo; ix < hi; ix++ {
			row := ix * ny
			if ix > 0 && ix < nx-1 {
				for iy := 0; iy < ny; iy++ {
					dst[row+iy] = (psi[row+ny+iy] - 2*psi[row+iy] + psi[row-ny+iy]) * inv0
				}
			} else {
				for iy := 0; iy < ny; iy++ {
					dst[row+iy] = 0
				}
			}
			for iy := 1; iy < ny-1; iy++ {
				dst[row+iy] += (psi[row+iy+1] - 2*psi[row+iy] + psi[row+iy-1]) * inv1
			}
		}
	}

	if len(psi) >= parallelThreshold {
		ParallelFor(nx, 8, rows)
	} else {
		rows(0, nx)
	}
}
