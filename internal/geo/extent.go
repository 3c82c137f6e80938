package geo

import "github.com/paulmach/orb"

// Finland is the EPSG:3067 extent the map view is restricted to.
var Finland = orb.Bound{
	Min: orb.Point{43547.79, 6522236.87},
	Max: orb.Point{764796.72, 7795461.19},
}

// DefaultCenter is the initial camera position.
var DefaultCenter = orb.Point{460000, 7125000}

// Clamp keeps p inside b.
func Clamp(b orb.Bound, p orb.Point) orb.Point {
	x, y := p.X(), p.Y()
	if x < b.Min.X() {
		x = b.Min.X()
	}
	if x > b.Max.X() {
		x = b.Max.X()
	}
	if y < b.Min.Y() {
		y = b.Min.Y()
	}
	if y > b.Max.Y() {
		y = b.Max.Y()
	}
	return orb.Point{x, y}
}

// PRJ is the ESRI WKT definition of ETRS89 / TM35FIN written next to exported
// shapefiles.
const PRJ = `PROJCS["ETRS89_TM35FIN",GEOGCS["GCS_ETRS_1989",DATUM["D_ETRS_1989",SPHEROID["GRS_1980",6378137.0,298.257222101]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]],PROJECTION["Transverse_Mercator"],PARAMETER["False_Easting",500000.0],PARAMETER["False_Northing",0.0],PARAMETER["Central_Meridian",27.0],PARAMETER["Scale_Factor",0.9996],PARAMETER["Latitude_Of_Origin",0.0],UNIT["Meter",1.0]]`
