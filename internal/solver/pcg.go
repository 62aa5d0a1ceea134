package solver

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Result reports how a Solve call terminated. Non-convergence is never
// an error on its own; it is just a reported best iterate.
type Result struct {
	Iterations int
	Residual   float64
	Converged  bool
}

// Solve runs preconditioned conjugate gradient against the SPD
// operator -L for A*x=b, with a Jacobi (diagonal) preconditioner. x is
// used as the initial guess and overwritten with the best iterate
// found, whether or not the tolerance was reached.
func Solve(l *Laplacian, b, x []float64, tol float64, maxIter int) Result {
	n := len(b)
	r := l.scratchR[:n]
	ax := l.scratchAx[:n]
	l.ApplySPD(x, ax)
	for i := 0; i < n; i++ {
		r[i] = b[i] - ax[i]
	}

	bNorm := floats.Norm(b, 2)
	if bNorm == 0 {
		bNorm = 1
	}

	resNorm := floats.Norm(r, 2)
	if resNorm/bNorm < tol {
		return Result{Iterations: 0, Residual: resNorm, Converged: true}
	}

	z := l.scratchZ[:n]
	jacobi(l, r, z)
	p := l.scratchP[:n]
	copy(p, z)

	rz := floats.Dot(r, z)
	ap := l.scratchAp[:n]

	iter := 0
	for ; iter < maxIter; iter++ {
		l.ApplySPD(p, ap)
		pap := floats.Dot(p, ap)
		if pap == 0 {
			break
		}
		alpha := rz / pap

		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, ap)

		resNorm = floats.Norm(r, 2)
		if resNorm/bNorm < tol {
			iter++
			break
		}

		jacobi(l, r, z)
		rzNew := floats.Dot(r, z)
		beta := rzNew / rz
		rz = rzNew

		// p = z + beta*p
		for i := range p {
			p[i] = z[i] + beta*p[i]
		}
	}

	return Result{
		Iterations: iter,
		Residual:   resNorm,
		Converged:  !math.IsNaN(resNorm) && resNorm/bNorm < tol,
	}
}

// jacobi applies the diagonal preconditioner z = r / degree, leaving
// any zero-degree cell (only possible on a 1x1x1 grid) untouched.
func jacobi(l *Laplacian, r, z []float64) {
	for i := range r {
		d := l.Degree(i)
		if d == 0 {
			z[i] = r[i]
			continue
		}
		z[i] = r[i] / float64(d)
	}
}
