// Package nautical draws a chart of CTD deployment locations over
// bathymetry and coastline.
package nautical

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/vdobler/oxyplot"
)

// Deployment is the position of one CTD cast.
type Deployment struct {
	ID  int     `yaml:"id"`
	Lon float64 `yaml:"lon"`
	Lat float64 `yaml:"lat"`
}

// Column names of the deployment table.
const (
	DeploymentCol = "Deployment"
	LongitudeCol  = "Longitude"
	LatitudeCol   = "Latitude"
)

// ReadDeployments reads a CSV table with the columns Deployment, Longitude
// and Latitude. Rows with a missing value are an error.
func ReadDeployments(r io.Reader, name string) ([]Deployment, error) {
	df, err := oxyplot.ReadCSV(r, name)
	if err != nil {
		return nil, err
	}
	ids, err := df.Floats(DeploymentCol)
	if err != nil {
		return nil, err
	}
	lons, err := df.Floats(LongitudeCol)
	if err != nil {
		return nil, err
	}
	lats, err := df.Floats(LatitudeCol)
	if err != nil {
		return nil, err
	}

	deps := make([]Deployment, df.N)
	for i := range deps {
		if math.IsNaN(ids[i]) || math.IsNaN(lons[i]) || math.IsNaN(lats[i]) {
			return nil, fmt.Errorf("%s: row %d: missing value", name, i+1)
		}
		if ids[i] != math.Trunc(ids[i]) {
			return nil, fmt.Errorf("%s: row %d: deployment %g is not an integer", name, i+1, ids[i])
		}
		deps[i] = Deployment{ID: int(ids[i]), Lon: lons[i], Lat: lats[i]}
	}
	return deps, nil
}

// ReadDeploymentsFile is ReadDeployments on the file path.
func ReadDeploymentsFile(path string) ([]Deployment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadDeployments(f, path)
}

// LabelOffset is the vertical offset in degrees of the label of deployment
// id. Deployment 1 is labelled above its neighbours, all others below.
func LabelOffset(id int) float64 {
	if id == 1 {
		return 0.02
	}
	return -0.04
}

// LabelPosition is where the label of d is placed.
func (d Deployment) LabelPosition() (lon, lat float64) {
	return d.Lon + 0.05, d.Lat + LabelOffset(d.ID)
}

// Label is the text written next to d.
func (d Deployment) Label() string {
	return fmt.Sprintf("Dep. %d", d.ID)
}
