package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/LdDl/lanegeom"
	"github.com/joho/godotenv"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

var (
	tagStr      = flag.String("tags", "highway=primary,lanes=4,sidewalk=both", "OSM way tags describing cross-section (key=value separated by commas)")
	wktStr      = flag.String("wkt", "", "Centerline as WKT LINESTRING. If empty then straight line of -length meters along X axis is used")
	length      = flag.Float64("length", 100.0, "Road length in meters (used when -wkt is empty)")
	splitStr    = flag.String("split", "", "Absolute s values to split lane sections at (separated by commas)")
	step        = flag.Float64("step", lanegeom.DefaultStep, "Sampling step in meters")
	junction    = flag.Bool("junction", false, "Treat road as junction connecting road (finer sampling step)")
	lht         = flag.Bool("lht", false, "Left-hand traffic")
	geographic  = flag.Bool("geographic", false, "Centerline is given in EPSG:4326 (lon/lat); outputs are written in EPSG:4326 too")
	out         = flag.String("out", "lanes.csv", "Filename of 'Comma-Separated Values' (CSV) formatted file with lane outlines")
	geojsonFile = flag.String("geojson", "", "Filename of GeoJSON file with lane outlines. Skipped if empty")
	routeStr    = flag.String("route", "", "Find lane-level route between two lanes of the first and the last section. Expected value: 'fromLaneID,toLaneID'")
	agentStr    = flag.String("agent", "auto", "Agent type for routing. Expected values: auto / bike / walk")
	verbose     = flag.Bool("verbose", true, "Print progress")
	envFile     = flag.String("env", ".env", "Filename of dotenv file. Its LANEMESH_<FLAG> variables (e.g. LANEMESH_STEP) are used for flags not given on command line")
)

const envPrefix = "LANEMESH_"

func main() {

	flag.Parse()

	err := applyEnv(*envFile)
	if err != nil {
		fmt.Println(err)
		return
	}

	tags, err := parseTags(*tagStr)
	if err != nil {
		fmt.Println(err)
		return
	}
	preset := lanegeom.PresetFromTags(tags)
	for _, warning := range preset.Warnings {
		fmt.Println("[WARNING]", warning)
	}

	resolver, roadLength, err := prepareResolver()
	if err != nil {
		fmt.Println(err)
		return
	}

	rule := lanegeom.TRAFFIC_RHT
	if *lht {
		rule = lanegeom.TRAFFIC_LHT
	}
	network := lanegeom.NewLaneNetwork(roadLength, lanegeom.WithTrafficRule(rule), lanegeom.WithJunction(*junction))
	section, err := network.AddSection(0)
	if err != nil {
		fmt.Println(err)
		return
	}
	err = preset.Apply(section)
	if err != nil {
		fmt.Println(err)
		return
	}
	err = network.RecomputeCoordinates()
	if err != nil {
		fmt.Println(err)
		return
	}
	if *splitStr != "" {
		for _, part := range strings.Split(*splitStr, ",") {
			s, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				fmt.Println(errors.Wrapf(err, "Bad split value '%s'", part))
				return
			}
			if _, err := network.SplitSection(s); err != nil {
				fmt.Println(err)
				return
			}
		}
	}
	if *verbose {
		fmt.Printf("Preset: %s\n", preset)
		fmt.Printf("Network: %s\n", network)
	}

	tessellator := lanegeom.NewTessellator(lanegeom.WithStep(*step))
	builder := lanegeom.NewMeshBuilder(tessellator, lanegeom.WithVerbose(*verbose))
	meshes, err := builder.Build(network, resolver)
	if err != nil {
		fmt.Println(err)
		return
	}
	surface := lanegeom.Merge(meshes, lanegeom.MESH_LANE_SURFACE)
	marks := lanegeom.Merge(meshes, lanegeom.MESH_ROAD_MARK)
	fmt.Printf("Meshes: %d | Lane surfaces: %s | Road marks: %s\n", len(meshes), surface, marks)

	if *verbose {
		fmt.Printf("Exporting lanes to '%s'...", *out)
	}
	err = lanegeom.ExportLanesToCSV(*out, network, resolver, tessellator, *geographic)
	if err != nil {
		fmt.Println(err)
		return
	}
	if *verbose {
		fmt.Printf("Done\n")
	}

	if *geojsonFile != "" {
		b, err := lanegeom.ExportOutlinesGeoJSON(network, resolver, tessellator, *geographic)
		if err != nil {
			fmt.Println(err)
			return
		}
		err = os.WriteFile(*geojsonFile, b, 0644)
		if err != nil {
			fmt.Println(err)
			return
		}
	}

	if *routeStr != "" {
		err = route(network, *routeStr, lanegeom.ParseAgentType(*agentStr))
		if err != nil {
			fmt.Println(err)
			return
		}
	}
}

// applyEnv sets flags which were not given explicitly from environment (optionally loaded from dotenv file)
func applyEnv(fname string) error {
	if fname != "" {
		if err := godotenv.Load(fname); err != nil && !os.IsNotExist(errors.Cause(err)) {
			return errors.Wrapf(err, "Can't load '%s'", fname)
		}
	}
	explicit := map[string]struct{}{}
	flag.Visit(func(f *flag.Flag) {
		explicit[f.Name] = struct{}{}
	})
	var setErr error
	flag.VisitAll(func(f *flag.Flag) {
		if _, ok := explicit[f.Name]; ok || setErr != nil {
			return
		}
		value, ok := os.LookupEnv(envPrefix + strings.ToUpper(f.Name))
		if !ok {
			return
		}
		if err := flag.Set(f.Name, value); err != nil {
			setErr = errors.Wrapf(err, "Bad value of %s%s", envPrefix, strings.ToUpper(f.Name))
		}
	})
	return setErr
}

func parseTags(str string) (osm.Tags, error) {
	tags := osm.Tags{}
	for _, pair := range strings.Split(str, ",") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return nil, errors.Errorf("Tag should be given as key=value. Got '%s'", pair)
		}
		tags = append(tags, osm.Tag{Key: strings.TrimSpace(kv[0]), Value: strings.TrimSpace(kv[1])})
	}
	return tags, nil
}

func prepareResolver() (lanegeom.CoordinateResolver, float64, error) {
	if *wktStr == "" {
		return lanegeom.LineResolver{Start: orb.Point{0, 0}}, *length, nil
	}
	line, err := lanegeom.ParseWKTLinestring(*wktStr)
	if err != nil {
		return nil, 0, err
	}
	var resolver *lanegeom.PolylineResolver
	if *geographic {
		resolver, err = lanegeom.NewGeoPolylineResolver(line)
	} else {
		resolver, err = lanegeom.NewPolylineResolver(line)
	}
	if err != nil {
		return nil, 0, errors.Wrap(err, "Can't prepare centerline")
	}
	return resolver, resolver.Length(), nil
}

func route(network *lanegeom.LaneNetwork, str string, agent lanegeom.AgentType) error {
	parts := strings.Split(str, ",")
	if len(parts) != 2 {
		return errors.Errorf("Route should be given as 'fromLaneID,toLaneID'. Got '%s'", str)
	}
	fromID, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 32)
	if err != nil {
		return errors.Wrap(err, "Bad source lane id")
	}
	toID, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 32)
	if err != nil {
		return errors.Wrap(err, "Bad target lane id")
	}
	sections := network.Sections()
	from, err := sections[0].Lane(int32(fromID))
	if err != nil {
		return errors.Wrap(err, "Can't find source lane")
	}
	to, err := sections[len(sections)-1].Lane(int32(toID))
	if err != nil {
		return errors.Wrap(err, "Can't find target lane")
	}
	graph, err := lanegeom.NewLaneGraph(network, agent, lanegeom.WithGraphVerbose(*verbose))
	if err != nil {
		return errors.Wrap(err, "Can't prepare lane graph")
	}
	cost, path, err := graph.ShortestPath(from.Handle(), to.Handle())
	if err != nil {
		return err
	}
	fmt.Printf("Route cost: %f\n", cost)
	for _, handle := range path {
		fmt.Printf("\t%s\n", handle)
	}
	return nil
}
