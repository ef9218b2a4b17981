package sim

import (
	"fmt"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/gpkg"
)

// srsUndefinedCartesian is the GeoPackage spatial reference for an abstract
// cartesian plane, which is what a simulation runs on.
const srsUndefinedCartesian = 0

const (
	positionsTable    = "positions"
	trajectoriesTable = "trajectories"
)

// WriteGeopackage writes the simulation trace to a GeoPackage: a point layer
// with every per-step position and a linestring layer with one trajectory per
// body. The coordinates are float conversions of the fixed-point trace, for
// inspection in e.g. QGIS; the fixed-point values stay the source of truth.
func (s *Simulation) WriteGeopackage(path string) error {
	h, err := gpkg.Open(path)
	if err != nil {
		return fmt.Errorf("error opening target GeoPackage: %w", err)
	}
	defer h.Close()

	err = createTraceTables(h)
	if err != nil {
		return err
	}
	err = s.writePositions(h)
	if err != nil {
		return err
	}
	return s.writeTrajectories(h)
}

func createTraceTables(h *gpkg.Handle) error {
	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS "` + positionsTable + `" (fid INTEGER PRIMARY KEY AUTOINCREMENT, body TEXT NOT NULL, step INTEGER NOT NULL, geom BLOB);`,
		`CREATE TABLE IF NOT EXISTS "` + trajectoriesTable + `" (fid INTEGER PRIMARY KEY AUTOINCREMENT, body TEXT NOT NULL, geom BLOB);`,
	} {
		_, err := h.Exec(ddl)
		if err != nil {
			return fmt.Errorf("error building table in target GeoPackage: %w", err)
		}
	}

	for _, layer := range []struct {
		table string
		gtype gpkg.GeometryType
	}{
		{positionsTable, gpkg.Point},
		{trajectoriesTable, gpkg.Linestring},
	} {
		err := h.AddGeometryTable(gpkg.TableDescription{
			Name:          layer.table,
			ShortName:     layer.table,
			Description:   layer.table,
			GeometryField: "geom",
			GeometryType:  layer.gtype,
			SRS:           srsUndefinedCartesian,
			Z:             gpkg.Prohibited,
			M:             gpkg.Prohibited,
		})
		if err != nil {
			return fmt.Errorf("error adding geometry table in target GeoPackage: %w", err)
		}
	}
	return nil
}

func (s *Simulation) writePositions(h *gpkg.Handle) error {
	tx, err := h.Begin()
	if err != nil {
		return fmt.Errorf("could not start a transaction: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO "` + positionsTable + `"(body, step, geom) VALUES(?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("could not prepare a statement: %w", err)
	}

	var ext *geom.Extent
	for _, body := range s.Bodies() {
		for step, pos := range body.Track {
			pt := pos.ToGeomPoint()
			sb, err := gpkg.NewBinary(srsUndefinedCartesian, pt)
			if err != nil {
				return fmt.Errorf("could not create a binary geometry: %w", err)
			}
			_, err = stmt.Exec(body.Name, step, sb)
			if err != nil {
				return fmt.Errorf("could not write position %v of %v: %w", step, body.Name, err)
			}
			if ext == nil {
				ext = geom.NewExtent(pt)
			} else {
				ext.AddPoints(pt)
			}
		}
	}
	stmt.Close()
	err = tx.Commit()
	if err != nil {
		return err
	}
	return h.UpdateGeometryExtent(positionsTable, ext)
}

func (s *Simulation) writeTrajectories(h *gpkg.Handle) error {
	tx, err := h.Begin()
	if err != nil {
		return fmt.Errorf("could not start a transaction: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO "` + trajectoriesTable + `"(body, geom) VALUES(?, ?)`)
	if err != nil {
		return fmt.Errorf("could not prepare a statement: %w", err)
	}

	var ext *geom.Extent
	for _, body := range s.Bodies() {
		ls := make(geom.LineString, 0, len(body.Track))
		for _, pos := range body.Track {
			ls = append(ls, pos.ToGeomPoint())
		}
		sb, err := gpkg.NewBinary(srsUndefinedCartesian, ls)
		if err != nil {
			return fmt.Errorf("could not create a binary geometry: %w", err)
		}
		_, err = stmt.Exec(body.Name, sb)
		if err != nil {
			return fmt.Errorf("could not write trajectory of %v: %w", body.Name, err)
		}
		if ext == nil {
			ext, err = geom.NewExtentFromGeometry(ls)
			if err != nil {
				return err
			}
		} else {
			err = ext.AddGeometry(ls)
			if err != nil {
				return err
			}
		}
	}
	stmt.Close()
	err = tx.Commit()
	if err != nil {
		return err
	}
	return h.UpdateGeometryExtent(trajectoriesTable, ext)
}
