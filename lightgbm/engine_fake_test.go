package lightgbm

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"unsafe"

	"github.com/YuminosukeSato/lightgbm-go/capi"
)

type fakeDataset struct {
	nrow, ncol int
	label      []float32
}

type fakeBooster struct {
	rounds   int
	numClass int
	names    []string
}

// fakeEngine is an in-memory engine with LightGBM's calling conventions.
// Scores are a sigmoid of the row sum scaled by the number of trees.
// Creating a booster trains nothing; each update adds one round.
type fakeEngine struct {
	mu       sync.Mutex
	lastErr  string
	calls    []string
	counts   map[string]int
	failAt   map[string]int
	datasets map[capi.DatasetHandle]*fakeDataset
	boosters map[capi.BoosterHandle]*fakeBooster

	// finishedAfter makes UpdateOneIter report is_finished once a booster
	// has this many rounds. Zero disables it.
	finishedAfter int
	// featureNames overrides the Column_i names of boosters created from
	// datasets.
	featureNames []string
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		counts:   make(map[string]int),
		failAt:   make(map[string]int),
		datasets: make(map[capi.DatasetHandle]*fakeDataset),
		boosters: make(map[capi.BoosterHandle]*fakeBooster),
	}
}

// useFakeEngine installs a fresh fake for the duration of the test.
func useFakeEngine(t *testing.T) *fakeEngine {
	t.Helper()
	f := newFakeEngine()
	prev := native
	native = f
	t.Cleanup(func() { native = prev })
	return f
}

// failFrom makes the n-th and every later call of name fail.
func (f *fakeEngine) failFrom(name string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failAt[name] = n
}

func (f *fakeEngine) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[name]
}

func (f *fakeEngine) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeEngine) liveBoosters() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.boosters)
}

func (f *fakeEngine) liveDatasets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.datasets)
}

// enter records a call and reports whether it must fail. Callers hold f.mu.
func (f *fakeEngine) enter(name string) bool {
	f.calls = append(f.calls, name)
	f.counts[name]++
	if n, ok := f.failAt[name]; ok && f.counts[name] >= n {
		f.lastErr = name + ": injected failure"
		return true
	}
	return false
}

func (f *fakeEngine) fail(format string, args ...any) int {
	f.lastErr = fmt.Sprintf(format, args...)
	return -1
}

func (f *fakeEngine) Linked() bool { return true }

func (f *fakeEngine) LastError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

func (f *fakeEngine) DatasetCreateFromFile(filename, params string, reference capi.DatasetHandle, out *capi.DatasetHandle) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enter("LGBM_DatasetCreateFromFile") {
		return -1
	}
	raw, err := os.ReadFile(filename)
	if err != nil {
		return f.fail("Could not open %s", filename)
	}
	ds := &fakeDataset{}
	for _, line := range strings.Split(strings.TrimSpace(string(raw)), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		ds.ncol = len(fields) - 1
		label, _ := strconv.ParseFloat(fields[0], 32)
		ds.label = append(ds.label, float32(label))
		ds.nrow++
	}
	h := capi.DatasetHandle(unsafe.Pointer(new(byte)))
	f.datasets[h] = ds
	*out = h
	return 0
}

func (f *fakeEngine) DatasetCreateFromMat(data []float64, nrow, ncol int32, rowMajor bool, params string, reference capi.DatasetHandle, out *capi.DatasetHandle) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enter("LGBM_DatasetCreateFromMat") {
		return -1
	}
	if len(data) != int(nrow)*int(ncol) {
		return f.fail("data holds %d values, expected %d", len(data), nrow*ncol)
	}
	h := capi.DatasetHandle(unsafe.Pointer(new(byte)))
	f.datasets[h] = &fakeDataset{nrow: int(nrow), ncol: int(ncol)}
	*out = h
	return 0
}

func (f *fakeEngine) DatasetSetField(h capi.DatasetHandle, field string, data []float32) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enter("LGBM_DatasetSetField") {
		return -1
	}
	ds, ok := f.datasets[h]
	if !ok {
		return f.fail("invalid dataset handle")
	}
	if field != "label" {
		return f.fail("Unknown field %s", field)
	}
	if len(data) != ds.nrow {
		return f.fail("Length of label is not same with #data")
	}
	ds.label = append([]float32(nil), data...)
	return 0
}

func (f *fakeEngine) DatasetGetNumData(h capi.DatasetHandle, out *int32) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enter("LGBM_DatasetGetNumData") {
		return -1
	}
	ds, ok := f.datasets[h]
	if !ok {
		return f.fail("invalid dataset handle")
	}
	*out = int32(ds.nrow)
	return 0
}

func (f *fakeEngine) DatasetGetNumFeature(h capi.DatasetHandle, out *int32) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enter("LGBM_DatasetGetNumFeature") {
		return -1
	}
	ds, ok := f.datasets[h]
	if !ok {
		return f.fail("invalid dataset handle")
	}
	*out = int32(ds.ncol)
	return 0
}

func (f *fakeEngine) DatasetFree(h capi.DatasetHandle) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enter("LGBM_DatasetFree") {
		return -1
	}
	if _, ok := f.datasets[h]; !ok {
		return f.fail("invalid dataset handle")
	}
	delete(f.datasets, h)
	return 0
}

func (f *fakeEngine) BoosterCreate(train capi.DatasetHandle, params string, out *capi.BoosterHandle) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enter("LGBM_BoosterCreate") {
		return -1
	}
	ds, ok := f.datasets[train]
	if !ok {
		return f.fail("invalid dataset handle")
	}
	p, err := ParseParams(params)
	if err != nil {
		return f.fail("Unknown parameter format: %s", params)
	}
	numClass := 1
	if v, ok := p["num_class"]; ok {
		if n, ok := toInt(v); ok {
			numClass = n
		}
	}
	names := f.featureNames
	if names == nil {
		for i := 0; i < ds.ncol; i++ {
			names = append(names, fmt.Sprintf("Column_%d", i))
		}
	}
	h := capi.BoosterHandle(unsafe.Pointer(new(byte)))
	f.boosters[h] = &fakeBooster{numClass: numClass, names: names}
	*out = h
	return 0
}

func (f *fakeEngine) BoosterCreateFromModelfile(filename string, outNumIterations *int32, out *capi.BoosterHandle) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enter("LGBM_BoosterCreateFromModelfile") {
		return -1
	}
	raw, err := os.ReadFile(filename)
	if err != nil {
		return f.fail("Could not open %s", filename)
	}
	lines := strings.Split(string(raw), "\n")
	if lines[0] != "fake_booster" {
		return f.fail("Unknown model format or submodel type in model file")
	}
	b := &fakeBooster{}
	for _, line := range lines[1:] {
		key, value, _ := strings.Cut(line, "=")
		switch key {
		case "rounds":
			b.rounds, _ = strconv.Atoi(value)
		case "num_class":
			b.numClass, _ = strconv.Atoi(value)
		case "feature_names":
			b.names = strings.Fields(value)
		}
	}
	h := capi.BoosterHandle(unsafe.Pointer(new(byte)))
	f.boosters[h] = b
	*outNumIterations = int32(b.rounds)
	*out = h
	return 0
}

func (f *fakeEngine) booster(h capi.BoosterHandle) (*fakeBooster, bool) {
	b, ok := f.boosters[h]
	if !ok {
		f.lastErr = "invalid booster handle"
	}
	return b, ok
}

func (f *fakeEngine) BoosterUpdateOneIter(h capi.BoosterHandle, isFinished *int32) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enter("LGBM_BoosterUpdateOneIter") {
		return -1
	}
	b, ok := f.booster(h)
	if !ok {
		return -1
	}
	b.rounds++
	*isFinished = 0
	if f.finishedAfter > 0 && b.rounds >= f.finishedAfter {
		*isFinished = 1
	}
	return 0
}

func (f *fakeEngine) BoosterGetCurrentIteration(h capi.BoosterHandle, out *int32) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enter("LGBM_BoosterGetCurrentIteration") {
		return -1
	}
	b, ok := f.booster(h)
	if !ok {
		return -1
	}
	*out = int32(b.rounds)
	return 0
}

func (f *fakeEngine) BoosterGetNumClasses(h capi.BoosterHandle, out *int32) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enter("LGBM_BoosterGetNumClasses") {
		return -1
	}
	b, ok := f.booster(h)
	if !ok {
		return -1
	}
	*out = int32(b.numClass)
	return 0
}

func (f *fakeEngine) BoosterGetNumFeature(h capi.BoosterHandle, out *int32) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enter("LGBM_BoosterGetNumFeature") {
		return -1
	}
	b, ok := f.booster(h)
	if !ok {
		return -1
	}
	*out = int32(len(b.names))
	return 0
}

func (f *fakeEngine) BoosterGetFeatureNames(h capi.BoosterHandle, slots [][]byte, outLen *int32, outBufferLen *uint64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enter("LGBM_BoosterGetFeatureNames") {
		return -1
	}
	b, ok := f.booster(h)
	if !ok {
		return -1
	}
	required := 0
	for i, name := range b.names {
		if len(name)+1 > required {
			required = len(name) + 1
		}
		if i < len(slots) {
			slot := slots[i]
			n := copy(slot[:len(slot)-1], name)
			slot[n] = 0
		}
	}
	*outLen = int32(len(b.names))
	*outBufferLen = uint64(required)
	return 0
}

func (f *fakeEngine) BoosterFeatureImportance(h capi.BoosterHandle, numIteration, importanceType int32, out []float64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enter("LGBM_BoosterFeatureImportance") {
		return -1
	}
	b, ok := f.booster(h)
	if !ok {
		return -1
	}
	if len(out) != len(b.names) {
		return f.fail("importance buffer holds %d slots, expected %d", len(out), len(b.names))
	}
	for j := range out {
		out[j] = float64(b.rounds * (j + 1))
	}
	return 0
}

func (f *fakeEngine) BoosterPredictForMat(h capi.BoosterHandle, data []float32, nrow, ncol int32, rowMajor bool, predictType, startIteration, numIteration int32, params string, outLen *int64, out []float64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enter("LGBM_BoosterPredictForMat") {
		return -1
	}
	b, ok := f.booster(h)
	if !ok {
		return -1
	}
	if int(ncol) != len(b.names) {
		return f.fail("The number of features in data (%d) is not the same as it was in training data (%d).", ncol, len(b.names))
	}
	if len(data) != int(nrow)*int(ncol) || len(out) != int(nrow)*b.numClass {
		return f.fail("buffer size mismatch")
	}
	for r := 0; r < int(nrow); r++ {
		var sum float64
		for _, v := range data[r*int(ncol) : (r+1)*int(ncol)] {
			sum += float64(v)
		}
		for k := 0; k < b.numClass; k++ {
			z := 0.1*float64(b.rounds+1)*sum - float64(k)
			out[r*b.numClass+k] = 1 / (1 + math.Exp(-z))
		}
	}
	*outLen = int64(int(nrow) * b.numClass)
	return 0
}

func (f *fakeEngine) BoosterSaveModel(h capi.BoosterHandle, startIteration, numIteration, importanceType int32, filename string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enter("LGBM_BoosterSaveModel") {
		return -1
	}
	b, ok := f.booster(h)
	if !ok {
		return -1
	}
	content := fmt.Sprintf("fake_booster\nrounds=%d\nnum_class=%d\nfeature_names=%s\n",
		b.rounds, b.numClass, strings.Join(b.names, " "))
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return f.fail("%v", err)
	}
	return 0
}

func (f *fakeEngine) BoosterFree(h capi.BoosterHandle) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enter("LGBM_BoosterFree") {
		return -1
	}
	if _, ok := f.booster(h); !ok {
		return -1
	}
	delete(f.boosters, h)
	return 0
}
