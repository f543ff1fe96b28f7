package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/pinn/internal/autodiff"
	"github.com/born-ml/pinn/internal/backend/cpu"
	"github.com/born-ml/pinn/internal/collocation"
	"github.com/born-ml/pinn/internal/config"
	"github.com/born-ml/pinn/internal/nn"
	"github.com/born-ml/pinn/internal/pde"
	"github.com/born-ml/pinn/internal/tensor"
)

type backendT = *autodiff.AutodiffBackend[*cpu.CPUBackend]

type tensorT = tensor.Tensor[float64, backendT]

func runSample(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sampler, err := collocation.NewSampler(cfg.SamplerConfig(), cpu.New())
	if err != nil {
		return err
	}
	sample := sampler.Sample()

	fmt.Printf("points: %v  index: %v\n\n", sample.Points.Shape(), sample.Index.Shape())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REGION\tCOUNT\tT MIN\tT MAX\tX MIN\tX MAX")
	regions := []struct {
		name  string
		block *tensor.Tensor[float64, *cpu.CPUBackend]
	}{
		{"initial", sample.Initial()},
		{"boundary", sample.Boundary()},
		{"interior", sample.Interior()},
	}
	for _, r := range regions {
		ts, xs := unzip(r.block.Data())
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\n",
			r.name, len(ts), floats.Min(ts), floats.Max(ts), floats.Min(xs), floats.Max(xs))
	}
	w.Flush()

	p, s := cfg.Sampler.Points, float64(cfg.Sampler.Cells)
	ok := true
	for row := range cfg.Sampler.Batch {
		for j := range p {
			if sample.T.At(row, j) != 0 || sample.X.At(row, j) != float64(sample.Index.At(row, j))/s {
				ok = false
			}
		}
	}
	fmt.Printf("\ninitial points on cells: %v\n", ok)
	return nil
}

func runGrid(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	grid, err := collocation.Grid(cfg.Sampler.Batch, cfg.Sampler.TimeSteps, cfg.Sampler.Cells, cpu.New())
	if err != nil {
		return err
	}

	times := distinct(grid.T.Data())
	spaces := distinct(grid.X.Data())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AXIS\tCOUNT\tFIRST\tSECOND\tLAST")
	fmt.Fprintf(w, "t\t%d\t%.6f\t%.6f\t%.6f\n", len(times), times[0], at(times, 1), times[len(times)-1])
	fmt.Fprintf(w, "x\t%d\t%.6f\t%.6f\t%.6f\n", len(spaces), spaces[0], at(spaces, 1), spaces[len(spaces)-1])
	w.Flush()

	fmt.Printf("\npoints: %v\n", grid.Points.Shape())
	return nil
}

func runResidual(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	backend := autodiff.New(cpu.New())

	var model pde.Field[backendT]
	switch field {
	case "mlp":
		rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // Deterministic initialization
		mlp, err := nn.NewMLP(cfg.Layers, rng, backend)
		if err != nil {
			return err
		}
		model = mlp
	case "quadratic":
		model = quadratic()
	default:
		return fmt.Errorf("unknown field: %s (available: mlp, quadratic)", field)
	}

	var coords *tensorT
	if onGrid {
		grid, err := collocation.Grid(cfg.Sampler.Batch, cfg.Sampler.TimeSteps, cfg.Sampler.Cells, backend)
		if err != nil {
			return err
		}
		coords = grid.Points
	} else {
		sampler, err := collocation.NewSampler(cfg.SamplerConfig(), backend)
		if err != nil {
			return err
		}
		coords = sampler.Sample().Points
	}

	x, t, err := collocation.Columns(coords)
	if err != nil {
		return err
	}

	terms, err := pde.ResidualTerms(model, x, t, cfg.Nu)
	if err != nil {
		return err
	}
	loss := pde.ResidualLoss(terms.Residual)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TERM\tMEAN\tSTD\tMIN\tMAX")
	for _, row := range []struct {
		name string
		t    *tensorT
	}{
		{"u", terms.U}, {"u_x", terms.Ux}, {"u_t", terms.Ut}, {"u_xx", terms.Uxx}, {"residual", terms.Residual},
	} {
		data := row.t.Data()
		mean, std := stat.MeanStdDev(data, nil)
		fmt.Fprintf(w, "%s\t%.6g\t%.6g\t%.6g\t%.6g\n", row.name, mean, std, floats.Min(data), floats.Max(data))
	}
	w.Flush()

	fmt.Printf("\npoints: %d  nu: %g  loss: %.6g  tape ops: %d\n",
		x.Shape()[0], cfg.Nu, loss.Item(), backend.Tape().NumOps())

	if check {
		backend.Tape().Clear()
		return checkDerivatives(model, backend, x, t, terms)
	}
	return nil
}

// quadratic is u = x² + t, whose residual is 1 + 2x(x² + t) - 2ν.
func quadratic() pde.FieldFunc[backendT] {
	return func(input *tensorT) *tensorT {
		x, t := pde.Split(input)
		return x.Mul(x).Add(t)
	}
}

// checkDerivatives compares autodiff derivatives at a few points with
// central finite differences.
func checkDerivatives(model pde.Field[backendT], backend backendT, x, t *tensorT, terms *pde.Terms[backendT]) error {
	n := x.Shape()[0]
	xs, ts := x.Data(), t.Data()

	eval := func(xv, tv float64) float64 {
		input, err := tensor.FromSlice([]float64{xv, tv}, tensor.Shape{1, 2}, backend)
		if err != nil {
			panic(err)
		}
		return model.Forward(input).Item()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nPOINT\tX\tT\t|ΔU_X|\t|ΔU_T|\t|ΔU_XX|")
	for _, i := range []int{0, n / 2, n - 1} {
		xv, tv := xs[i], ts[i]
		alongX := func(v float64) float64 { return eval(v, tv) }
		alongT := func(v float64) float64 { return eval(xv, v) }

		ux := fd.Derivative(alongX, xv, &fd.Settings{Formula: fd.Central})
		ut := fd.Derivative(alongT, tv, &fd.Settings{Formula: fd.Central})
		uxx := fd.Derivative(alongX, xv, &fd.Settings{Formula: fd.Central2nd})

		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.2e\t%.2e\t%.2e\n", i, xv, tv,
			math.Abs(ux-terms.Ux.At(i, 0)),
			math.Abs(ut-terms.Ut.At(i, 0)),
			math.Abs(uxx-terms.Uxx.At(i, 0)))
	}
	return w.Flush()
}

func runParams(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // Deterministic initialization
	model, err := nn.NewMLP(cfg.Layers, rng, cpu.New())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tSHAPE\tCOUNT")
	for i, p := range model.Parameters() {
		fmt.Fprintf(w, "%d\t%s\t%v\t%d\n", i, p.Name(), p.Tensor().Shape(), p.NumElements())
	}
	w.Flush()

	fmt.Printf("\nlayers: %v  total: %d\n", cfg.Layers, nn.CountParams[*cpu.CPUBackend](model))
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if outPath != "" {
		return config.Save(outPath, cfg)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

// unzip splits interleaved (t, x) pairs.
func unzip(pairs []float64) (ts, xs []float64) {
	ts = make([]float64, len(pairs)/2)
	xs = make([]float64, len(pairs)/2)
	for i := range ts {
		ts[i], xs[i] = pairs[2*i], pairs[2*i+1]
	}
	return ts, xs
}

func distinct(values []float64) []float64 {
	seen := make(map[float64]bool)
	var out []float64
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func at(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return math.NaN()
}
