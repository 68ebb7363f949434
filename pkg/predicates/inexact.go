package predicates

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ Backend = inexactBackend{}

// inexactBackend evaluates the "fast" Shewchuk formulas in float64.
type inexactBackend struct{}

func (inexactBackend) Mode() Mode { return Inexact }

func (inexactBackend) Orient2D(a, b, c v2.Vec) float64 {
	acx := a.X - c.X
	bcx := b.X - c.X
	acy := a.Y - c.Y
	bcy := b.Y - c.Y
	return acx*bcy - acy*bcx
}

func (inexactBackend) Orient3D(a, b, c, d v3.Vec) float64 {
	adx, ady, adz := a.X-d.X, a.Y-d.Y, a.Z-d.Z
	bdx, bdy, bdz := b.X-d.X, b.Y-d.Y, b.Z-d.Z
	cdx, cdy, cdz := c.X-d.X, c.Y-d.Y, c.Z-d.Z

	return adx*(bdy*cdz-bdz*cdy) +
		bdx*(cdy*adz-cdz*ady) +
		cdx*(ady*bdz-adz*bdy)
}

func (inexactBackend) InCircle(a, b, c, d v2.Vec) float64 {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	abdet := adx*bdy - bdx*ady
	bcdet := bdx*cdy - cdx*bdy
	cadet := cdx*ady - adx*cdy
	alift := adx*adx + ady*ady
	blift := bdx*bdx + bdy*bdy
	clift := cdx*cdx + cdy*cdy

	return alift*bcdet + blift*cadet + clift*abdet
}

func (inexactBackend) InSphere(a, b, c, d, e v3.Vec) float64 {
	aex, aey, aez := a.X-e.X, a.Y-e.Y, a.Z-e.Z
	bex, bey, bez := b.X-e.X, b.Y-e.Y, b.Z-e.Z
	cex, cey, cez := c.X-e.X, c.Y-e.Y, c.Z-e.Z
	dex, dey, dez := d.X-e.X, d.Y-e.Y, d.Z-e.Z

	ab := aex*bey - bex*aey
	bc := bex*cey - cex*bey
	cd := cex*dey - dex*cey
	da := dex*aey - aex*dey
	ac := aex*cey - cex*aey
	bd := bex*dey - dex*bey

	abc := aez*bc - bez*ac + cez*ab
	bcd := bez*cd - cez*bd + dez*bc
	cda := cez*da + dez*ac + aez*cd
	dab := dez*ab + aez*bd + bez*da

	alift := aex*aex + aey*aey + aez*aez
	blift := bex*bex + bey*bey + bez*bez
	clift := cex*cex + cey*cey + cez*cez
	dlift := dex*dex + dey*dey + dez*dez

	return (dlift*abc - clift*dab) + (blift*cda - alift*bcd)
}
