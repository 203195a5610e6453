package postprocess_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/photosphere/internal/testutils"
	"github.com/aretw0/photosphere/pkg/atomdata"
	"github.com/aretw0/photosphere/pkg/config"
	"github.com/aretw0/photosphere/pkg/domain"
	"github.com/aretw0/photosphere/pkg/postprocess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ni56 = domain.Nuclide{AtomicNumber: 28, MassNumber: 56}
	fe56 = domain.Nuclide{AtomicNumber: 26, MassNumber: 56}
	co56 = domain.Nuclide{AtomicNumber: 27, MassNumber: 56}
	he4  = domain.Nuclide{AtomicNumber: 2, MassNumber: 4}
)

// newModel builds a model whose elemental columns are zs and whose nuclide
// table holds he4, fe56 and ni56.
func newModel(t *testing.T, shells int, zs []int) *domain.StellarModel {
	t.Helper()

	elemental, err := domain.NewTable(shells, zs)
	require.NoError(t, err)
	for _, z := range zs {
		elemental.Upsert(z, 1/float64(len(zs)))
	}
	nuclides, err := domain.NewTable(shells, []domain.Nuclide{he4, fe56, ni56})
	require.NoError(t, err)
	nuclides.Upsert(he4, 0.28)
	nuclides.Upsert(fe56, 0.001)
	nuclides.Upsert(ni56, 0.002)

	profile := func(v float64) []float64 {
		out := make([]float64, shells)
		for i := range out {
			out[i] = v * float64(i+1)
		}
		return out
	}
	return &domain.StellarModel{
		Geometry:         profile(1e7),
		Temperature:      profile(4000),
		Density:          profile(1e-9),
		ElectronPressure: profile(1),
		GasPressure:      profile(100),
		Microturbulence:  profile(1e5),
		Composition: &domain.Composition{
			ElementalMassFraction: elemental,
			NuclideMassFraction:   nuclides,
		},
	}
}

func columns[K comparable](table *domain.Table[K]) map[K][]float64 {
	out := make(map[K][]float64, table.Len())
	for _, k := range table.Keys() {
		out[k], _ = table.Column(k)
	}
	return out
}

func newAtoms(t *testing.T, n int) *atomdata.Dataset {
	t.Helper()
	ds, err := atomdata.NewDataset("fixture", testutils.Elements(n))
	require.NoError(t, err)
	return ds
}

func TestMicroturbulence(t *testing.T) {
	ctx := context.Background()

	st := &postprocess.State{Model: newModel(t, 6, []int{1, 2})}
	require.NoError(t, postprocess.Microturbulence{Disable: false}.Process(ctx, st))
	assert.Equal(t, 1e5, st.Model.Microturbulence[0], "enabled microturbulence is kept")

	disable := postprocess.Microturbulence{Disable: true}
	require.NoError(t, disable.Process(ctx, st))
	once := append([]float64(nil), st.Model.Microturbulence...)
	require.NoError(t, disable.Process(ctx, st))

	assert.Equal(t, make([]float64, 6), once)
	assert.Equal(t, once, st.Model.Microturbulence)
	assert.Equal(t, 4000.0, st.Model.Temperature[0], "other profiles untouched")
}

func TestEffectiveElementCount(t *testing.T) {
	tests := []struct {
		name  string
		zs    []int
		final int
		want  int
	}{
		{"model has fewer", []int{1, 2, 6, 8}, 30, 4},
		{"final is lower", atomdata.ElementRange(30), 10, 10},
		{"equal", atomdata.ElementRange(30), 30, 30},
		{"empty model", nil, 30, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t, 2, tt.zs)
			assert.Equal(t, tt.want, postprocess.EffectiveElementCount(m, tt.final))
		})
	}

	assert.Equal(t, 0, postprocess.EffectiveElementCount(&domain.StellarModel{}, 30))
}

func TestElementRangeClamp(t *testing.T) {
	atoms := newAtoms(t, 30)
	st := &postprocess.State{Model: newModel(t, 3, atomdata.ElementRange(26)), Atoms: atoms}

	require.NoError(t, postprocess.ElementRangeClamp{FinalAtomicNumber: 30}.Process(context.Background(), st))

	assert.NotSame(t, atoms, st.Atoms)
	assert.True(t, atoms.Consumed())
	assert.Equal(t, atomdata.ElementRange(26), st.Atoms.AtomicNumbers())

	prep, ok := st.Atoms.Prepared()
	require.True(t, ok)
	assert.Equal(t, atomdata.LineInteractionMacroatom, prep.LineInteractionType)
	assert.Empty(t, prep.NLTESpecies)
	assert.Empty(t, prep.ContinuumInteractionSpecies)
}

func TestElementRangeClamp_NeverExceedsFinal(t *testing.T) {
	st := &postprocess.State{Model: newModel(t, 3, atomdata.ElementRange(30)), Atoms: newAtoms(t, 30)}

	require.NoError(t, postprocess.ElementRangeClamp{FinalAtomicNumber: 12}.Process(context.Background(), st))
	assert.Equal(t, 12, st.Atoms.Len())
}

func TestElementRangeClamp_Errors(t *testing.T) {
	ctx := context.Background()

	st := &postprocess.State{Model: newModel(t, 3, atomdata.ElementRange(20)), Atoms: newAtoms(t, 10)}
	err := postprocess.ElementRangeClamp{FinalAtomicNumber: 30}.Process(ctx, st)
	assert.ErrorIs(t, err, atomdata.ErrMissingElement)

	st = &postprocess.State{Model: newModel(t, 3, []int{1}), Atoms: newAtoms(t, 5)}
	clamp := postprocess.ElementRangeClamp{FinalAtomicNumber: 30}
	require.NoError(t, clamp.Process(ctx, st))
	st.Atoms = nil
	var pe *atomdata.PrepareError
	assert.ErrorAs(t, clamp.Process(ctx, st), &pe)
}

func TestNuclideRescaling(t *testing.T) {
	m := newModel(t, 4, []int{1, 2, 26, 28})
	before := m.Composition.NuclideMassFraction.Clone()
	elementalBefore := m.Composition.ElementalMassFraction.Clone()

	st := &postprocess.State{Model: m}
	rescale := postprocess.NuclideRescaling{Values: map[domain.Nuclide]float64{ni56: 0.05, co56: 0.01}}
	require.NoError(t, rescale.Process(context.Background(), st))

	table := m.Composition.NuclideMassFraction
	for row := 0; row < 4; row++ {
		v, _ := table.At(row, ni56)
		assert.Equal(t, 0.05, v)
		v, ok := table.At(row, co56)
		assert.True(t, ok, "absent nuclides are inserted")
		assert.Equal(t, 0.01, v)

		for _, other := range []domain.Nuclide{he4, fe56} {
			got, _ := table.At(row, other)
			want, _ := before.At(row, other)
			assert.Equal(t, want, got, "%s untouched", other)
		}
	}
	assert.Equal(t, []domain.Nuclide{he4, fe56, ni56, co56}, table.Keys())
	assert.Equal(t, columns(elementalBefore), columns(m.Composition.ElementalMassFraction))
}

func TestNuclideRescaling_NoOp(t *testing.T) {
	for name, values := range map[string]map[domain.Nuclide]float64{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			m := newModel(t, 2, []int{1, 2})
			table := m.Composition.NuclideMassFraction
			before := table.Clone()

			st := &postprocess.State{Model: m}
			require.NoError(t, postprocess.NuclideRescaling{Values: values}.Process(context.Background(), st))

			assert.Same(t, table, m.Composition.NuclideMassFraction)
			assert.Equal(t, columns(before), columns(table))
		})
	}
}

type failing struct{}

func (failing) Name() domain.Stage { return domain.Stage("failing") }
func (failing) Process(context.Context, *postprocess.State) error {
	return errors.New("boom")
}

func TestPipeline_Order(t *testing.T) {
	var (
		started []domain.Stage
		results []error
	)
	p := postprocess.New(
		postprocess.Microturbulence{Disable: true},
		postprocess.ElementRangeClamp{FinalAtomicNumber: 30},
		postprocess.NuclideRescaling{},
	).Observe(func(_ context.Context, stage domain.Stage) func(error) {
		started = append(started, stage)
		return func(err error) { results = append(results, err) }
	})

	st := &postprocess.State{Model: newModel(t, 3, []int{1, 2}), Atoms: newAtoms(t, 30)}
	require.NoError(t, p.Run(context.Background(), st))

	want := []domain.Stage{domain.StageMicroturbulence, domain.StagePrepareAtomData, domain.StageRescaleNuclides}
	assert.Equal(t, want, started)
	assert.Equal(t, want, p.Stages())
	assert.Equal(t, []error{nil, nil, nil}, results)
	assert.Equal(t, 2, st.Atoms.Len())
}

func TestPipeline_StopsAtFirstFailure(t *testing.T) {
	m := newModel(t, 3, []int{1, 2})
	p := postprocess.New(failing{}, postprocess.Microturbulence{Disable: true})

	err := p.Run(context.Background(), &postprocess.State{Model: m})
	assert.EqualError(t, err, "processor failing: boom")
	assert.Equal(t, 1e5, m.Microturbulence[0], "later processors do not run")

	assert.Error(t, p.Run(context.Background(), nil))
}

func TestFromConfig(t *testing.T) {
	cfg := config.Config{
		InputModel: config.InputModel{
			FinalAtomicNumber:    30,
			NuclideRescalingDict: map[string]float64{"Ni56": 0.5},
		},
	}
	cfg.Opacity.Line.DisableMicroturbulence = true

	p, err := postprocess.FromConfig(cfg)
	require.NoError(t, err)

	m := newModel(t, 2, []int{1, 2, 28})
	st := &postprocess.State{Model: m, Atoms: newAtoms(t, 30)}
	require.NoError(t, p.Run(context.Background(), st))

	assert.Equal(t, []float64{0, 0}, m.Microturbulence)
	assert.Equal(t, 3, st.Atoms.Len())
	v, _ := m.Composition.NuclideMassFraction.At(1, ni56)
	assert.Equal(t, 0.5, v)

	cfg.InputModel.NuclideRescalingDict = map[string]float64{"Xx56": 0.5}
	_, err = postprocess.FromConfig(cfg)
	assert.ErrorIs(t, err, domain.ErrUnknownNuclide)
}
