package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/ethanio12345/OpenMC/internal/config"
	"github.com/ethanio12345/OpenMC/internal/constants"
	"github.com/ethanio12345/OpenMC/internal/data"
	"github.com/ethanio12345/OpenMC/internal/rng"
	"github.com/ethanio12345/OpenMC/internal/transport"
	"github.com/ethanio12345/OpenMC/internal/utils"
)

func main() {
	configPath := flag.String("c", "", "TOML settings file")
	particles := flag.Int("n", 0, "histories per batch (overrides settings)")
	batches := flag.Int("b", 0, "number of batches (overrides settings)")
	seed := flag.Uint64("seed", 0, "run seed (overrides settings)")
	outputDir := flag.String("o", "", "directory for the k-eff batch trace CSV")
	quiet := flag.Bool("q", false, "suppress progress output")
	flag.Parse()

	settings := config.Default()
	if *configPath != "" {
		var err error
		settings, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *particles > 0 {
		settings.Particles = *particles
	}
	if *batches > 0 {
		settings.Batches = *batches
	}
	if *seed > 0 {
		settings.Seed = *seed
	}
	if *outputDir != "" {
		settings.OutputDir = *outputDir
	}
	if *quiet {
		settings.Verbosity = 0
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	lib, material, err := benchmarkLibrary()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if settings.Verbosity >= 1 {
		fmt.Printf("nuclides: %v\n", lib.NuclideNames())
		fmt.Printf("unionized grid: %d points\n", len(lib.EGrid))
	}

	geom := transport.NewBox(30., 30., 30., material)
	trace, keff, err := run(lib, geom, settings)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("k-eff = %.5f +/- %.5f (%d active batches)\n", keff.Mean(), keff.StdErr(), keff.N())

	if settings.OutputDir != "" {
		if err := utils.WriteAsCSV(trace, settings.OutputDir, "keff.csv",
			[]string{"batch", "k-eff"}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

// run drives the power iteration: batches of histories fan out over a
// worker pool, worker banks merge at batch boundaries, and the banked
// production renormalizes the eigenvalue guess.
func run(lib *data.Library, geom transport.Geometry, settings config.Settings) (utils.CSV, *transport.KeffAccumulator, error) {
	threads := settings.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	opt := transport.Options{
		Particles:       settings.Particles,
		SurvivalBiasing: settings.SurvivalBiasing,
		WeightCutoff:    settings.WeightCutoff,
		WeightSurvive:   settings.WeightSurvive,
		EnergyCutoff:    settings.EnergyCutoff,
		Tallies:         settings.Tallies,
		Verbosity:       settings.Verbosity,
	}

	workers := make([]*transport.Context, threads)
	for i := range workers {
		workers[i] = transport.NewContext(lib, opt, geom, nil)
	}

	// first-generation source from the initial Watt guess
	sourceStream := rng.New(settings.Seed, ^uint64(0))
	sourceSampler := workers[0].Sampler
	source := make([]*transport.Particle, settings.Particles)

	keffGuess := 1.0
	var keff transport.KeffAccumulator
	var trace utils.CSV

	for batch := 0; batch < settings.Batches; batch++ {
		if batch == 0 {
			sourceSampler.Rng = sourceStream
			for i := range source {
				source[i] = transport.SourceParticle(sourceSampler, int64(i))
			}
		}

		for _, w := range workers {
			w.Keff = keffGuess
			w.Bank.Clear()
		}

		var wg sync.WaitGroup
		work := make(chan int)
		errs := make(chan error, threads)
		historyBase := int64(batch) * int64(settings.Particles)

		for _, w := range workers {
			wg.Add(1)
			go func(ctx *transport.Context) {
				defer wg.Done()
				var failed error
				for i := range work {
					if failed != nil {
						continue // drain so the feeder never blocks
					}
					ctx.StartHistory(rng.New(settings.Seed, uint64(historyBase)+uint64(i)))
					failed = ctx.Transport(source[i])
				}
				if failed != nil {
					select {
					case errs <- failed:
					default:
					}
				}
			}(w)
		}
		for i := 0; i < settings.Particles; i++ {
			work <- i
		}
		close(work)
		wg.Wait()
		select {
		case err := <-errs:
			return nil, nil, err
		default:
		}

		// merge worker banks and renormalize the eigenvalue guess
		var sites []transport.Site
		for _, w := range workers {
			sites = append(sites, w.Bank.Sites()...)
		}
		if len(sites) == 0 {
			return nil, nil, fmt.Errorf("fission source died out in batch %d", batch+1)
		}
		keffBatch := keffGuess * float64(len(sites)) / float64(settings.Particles)
		keffGuess = keffBatch

		active := batch >= settings.InactiveBatches
		if active {
			keff.Add(keffBatch)
			trace = append(trace, []string{
				strconv.Itoa(batch + 1),
				strconv.FormatFloat(keffBatch, 'f', 6, 64),
			})
		}
		if settings.Verbosity >= 1 {
			marker := " "
			if active {
				marker = "*"
			}
			fmt.Printf("batch %3d%s  k = %.5f  bank = %d\n", batch+1, marker, keffBatch, len(sites))
		}

		// resample the merged bank into the next generation's source
		sourceSampler.Rng = sourceStream
		for i := range source {
			site := sites[sourceSampler.Rng.IntN(len(sites))]
			source[i] = transport.ParticleFromSite(site, historyBase+int64(settings.Particles)+int64(i))
		}
	}
	return trace, &keff, nil
}

// benchmarkLibrary builds the in-memory two-nuclide test problem the driver
// runs when no external data pipeline is wired in: a fast fissile metal
// diluted with a light elastic scatterer.
func benchmarkLibrary() (*data.Library, int, error) {
	lib := &data.Library{}

	grid := []float64{1e-5, 1e-3, 1e-1, 1., 5., 10., constants.MaxFissionEnergy}
	n := len(grid)
	flat := func(v float64) []float64 {
		s := make([]float64, n)
		for i := range s {
			s[i] = v
		}
		return s
	}

	yield, err := data.NewTab1(1, []float64{grid[0], grid[n-1]}, []float64{1., 1.})
	if err != nil {
		return nil, 0, err
	}
	watt := func(a, b float64) (*data.LawWatt, error) {
		at, err := data.NewTab1(1, []float64{grid[0], grid[n-1]}, []float64{a, a})
		if err != nil {
			return nil, err
		}
		bt, err := data.NewTab1(1, []float64{grid[0], grid[n-1]}, []float64{b, b})
		if err != nil {
			return nil, err
		}
		return &data.LawWatt{A: at, B: bt}, nil
	}
	prompt, err := watt(0.988, 2.249)
	if err != nil {
		return nil, 0, err
	}
	delayed, err := watt(0.455, 3.04)
	if err != nil {
		return nil, 0, err
	}

	fissile := &data.Nuclide{
		Name:        "U235",
		AWR:         233.0248,
		Energy:      grid,
		Total:       flat(7.0),
		Elastic:     flat(4.0),
		Absorption:  flat(3.0),
		Fission:     flat(1.8),
		Fissionable: true,
		NuTotal:     data.Nu{Form: data.NuPolynomial, Coeffs: []float64{2.43}},
		NuDelayed:   data.Nu{Form: data.NuPolynomial, Coeffs: []float64{0.0158}},
		Precursors: []data.Precursor{
			{DecayConstant: 0.0784, Yield: yield},
		},
		DelayedEnergy: []data.EnergyDist{delayed},
		Reactions: []data.Reaction{
			{MT: data.MTElastic, TY: 1, Sigma: flat(4.0)},
			{MT: data.MTFission, TY: 1, Q: 193.4, Sigma: flat(1.8), Energy: prompt},
			{MT: 102, TY: 0, Sigma: flat(1.2)},
		},
	}
	fissile.IndexFission = []int{1}

	scatterer := &data.Nuclide{
		Name:       "H1",
		AWR:        0.999167,
		Energy:     []float64{1e-5, 1e-2, 1., constants.MaxFissionEnergy},
		Total:      []float64{20.5, 20.2, 20.0, 19.8},
		Elastic:    []float64{20.2, 20.0, 19.9, 19.75},
		Absorption: []float64{0.3, 0.2, 0.1, 0.05},
		Reactions: []data.Reaction{
			{MT: data.MTElastic, TY: 1, Sigma: []float64{20.2, 20.0, 19.9, 19.75}},
			{MT: 102, TY: 0, Sigma: []float64{0.3, 0.2, 0.1, 0.05}},
		},
	}

	iu, err := lib.AddNuclide(fissile)
	if err != nil {
		return nil, 0, err
	}
	ih, err := lib.AddNuclide(scatterer)
	if err != nil {
		return nil, 0, err
	}
	mat, err := lib.AddMaterial(&data.Material{
		Name:      "fuel",
		Nuclides:  []int{iu, ih},
		Densities: []float64{0.045, 0.005},
	})
	if err != nil {
		return nil, 0, err
	}
	if err := lib.Unionize(); err != nil {
		return nil, 0, err
	}
	return lib, mat, nil
}
