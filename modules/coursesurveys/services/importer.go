// Package services imports a legacy course survey dump into an
// entities.Store. Tables are loaded one at a time in TableOrder; each legacy
// id is mapped to the id of the entity it became so later tables can
// resolve their foreign keys.
package services

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hkn-eecs/hkn/modules/coursesurveys/domain/entities"
	"github.com/hkn-eecs/hkn/pkg/dumpfile"
	"github.com/hkn-eecs/hkn/pkg/idcache"
)

const tracerName = "github.com/hkn-eecs/hkn/modules/coursesurveys/services"

type Options struct {
	// From is the directory holding the <table>.txt dump files.
	From    string
	Skip    []Table
	Verbose bool

	// CacheDir holds the id-mapping caches. Defaults to the working directory.
	CacheDir     string
	DisableCache bool

	// Metrics is optional; a fresh set is created when nil.
	Metrics *Metrics
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}

type season struct {
	name     string
	fraction string
}

// Importer carries all state of a single run. It is not safe for
// concurrent use and should not be reused after Run.
type Importer struct {
	store   entities.Store
	opts    Options
	log     logrus.FieldLogger
	metrics *Metrics
	tracer  trace.Tracer
	runID   uuid.UUID
	skip    map[Table]bool

	instructors *IDMap
	questions   *IDMap
	departments *IDMap
	courses     *IDMap
	klasses     *IDMap
	answers     *IDMap
	seasons     map[int64]season
}

func NewImporter(store entities.Store, opts Options, logger logrus.FieldLogger) (*Importer, error) {
	if store == nil {
		return nil, errors.Wrap(ErrMissingArgument, "no store provided")
	}
	if opts.From == "" {
		return nil, errors.Wrap(ErrMissingArgument, "no dump path provided")
	}
	if opts.CacheDir == "" {
		opts.CacheDir = "."
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = otel.GetTracerProvider()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	skip := make(map[Table]bool, len(opts.Skip))
	for _, t := range opts.Skip {
		parsed, err := ParseTable(string(t))
		if err != nil {
			return nil, err
		}
		skip[parsed] = true
	}

	runID := uuid.New()
	return &Importer{
		store:       store,
		opts:        opts,
		log:         logger.WithField("run_id", runID.String()),
		metrics:     opts.Metrics,
		tracer:      opts.TracerProvider.Tracer(tracerName),
		runID:       runID,
		skip:        skip,
		instructors: newIDMap(TableInstructors),
		questions:   newIDMap(TableQuestions),
		departments: newIDMap(TableDepartments),
		courses:     newIDMap(TableCourses),
		klasses:     newIDMap(TableKlasses),
		answers:     newIDMap(TableAnswers),
		seasons:     make(map[int64]season),
	}, nil
}

func (im *Importer) Metrics() *Metrics {
	return im.metrics
}

// Mapping returns the resolved legacy id to target id pairs of a table.
func (im *Importer) Mapping(t Table) map[int64]int64 {
	if m := im.idMap(t); m != nil {
		return m.Resolved()
	}
	return nil
}

func (im *Importer) idMap(t Table) *IDMap {
	switch t {
	case TableInstructors:
		return im.instructors
	case TableQuestions:
		return im.questions
	case TableDepartments:
		return im.departments
	case TableCourses:
		return im.courses
	case TableKlasses:
		return im.klasses
	case TableAnswers:
		return im.answers
	}
	return nil
}

// Run imports every table that is not skipped. The first fatal error stops
// the run; rows already saved stay saved. The returned Summary covers the
// tables processed so far even when err is non-nil.
func (im *Importer) Run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: im.runID, StartedAt: time.Now().UTC()}

	ctx, span := im.tracer.Start(ctx, "coursesurveys.import",
		trace.WithAttributes(attribute.String("coursesurveys.from", im.opts.From)))
	defer span.End()

	var err error
	for _, t := range TableOrder {
		var res TableResult
		res, err = im.runTable(ctx, t)
		summary.Tables = append(summary.Tables, res)
		if err != nil {
			break
		}
	}
	summary.FinishedAt = time.Now().UTC()
	im.metrics.recordRun(err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return summary, err
	}
	return summary, nil
}

func (im *Importer) runTable(ctx context.Context, t Table) (TableResult, error) {
	res := TableResult{Table: t, Source: SourceDump}
	if im.skip[t] {
		res.Source = SourceSkipped
		im.log.Infof("Skipping %s.", t)
		return res, nil
	}

	ctx, span := im.tracer.Start(ctx, "coursesurveys.load."+string(t),
		trace.WithAttributes(attribute.String("coursesurveys.table", string(t))))
	defer span.End()

	im.log.Infof("Loading %s.", t)
	var err error
	switch t {
	case TableInstructors:
		err = im.loadInstructors(ctx, &res)
	case TableQuestions:
		err = im.loadQuestions(ctx, &res)
	case TableSeasons:
		err = im.loadSeasons(ctx, &res)
	case TableDepartments:
		err = im.loadDepartments(ctx, &res)
	case TableCourses:
		err = im.loadCourses(ctx, &res)
	case TableKlasses:
		err = im.loadKlasses(ctx, &res)
	case TableInstructorships:
		err = im.loadInstructorships(ctx, &res)
	case TableAnswers:
		err = im.loadAnswers(ctx, &res)
	}
	if m := im.idMap(t); m != nil {
		res.Mapped = m.Len()
	} else if t == TableSeasons {
		res.Mapped = len(im.seasons)
	}
	im.metrics.recordTable(res)

	span.SetAttributes(
		attribute.String("coursesurveys.source", string(res.Source)),
		attribute.Int("coursesurveys.rows_read", res.Read),
		attribute.Int("coursesurveys.rows_saved", res.Saved),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		im.log.WithError(err).WithField("table", t).Error("import failed")
		return res, errors.Wrapf(err, "load %s", t)
	}
	im.log.Infof("Done loading %s.", t)
	return res, nil
}

func (im *Importer) readDump(t Table) ([]dumpfile.Record, error) {
	path := filepath.Join(im.opts.From, t.DumpFile())
	records, err := dumpfile.Read(path, t.Fields())
	if err != nil {
		return nil, errors.Wrapf(err, "read %s dump", t)
	}
	return records, nil
}

func (im *Importer) verbosef(format string, args ...any) {
	if im.opts.Verbose {
		im.log.Infof(format, args...)
	}
}

// loadCache fills m from the table's cache file. exists reports whether a
// target id is still present in the store; ids that are gone are kept as
// unresolved refs. It returns false when the table has to be rebuilt from
// its dump.
func (im *Importer) loadCache(ctx context.Context, t Table, m *IDMap, exists func(context.Context, int64) error) (bool, error) {
	if im.opts.DisableCache || t.CacheFile() == "" {
		return false, nil
	}
	path := filepath.Join(im.opts.CacheDir, t.CacheFile())
	entries, err := idcache.Load(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		im.metrics.recordCache(t, "miss")
		im.log.Infof("No cache file %s, rebuilding.", path)
		return false, nil
	case errors.Is(err, idcache.ErrCorrupt):
		im.metrics.recordCache(t, "corrupt")
		im.log.WithError(err).Warnf("Malformed cache file %s, rebuilding.", path)
		return false, nil
	case err != nil:
		im.metrics.recordCache(t, "error")
		im.log.WithError(err).Warnf("Couldn't load cache file %s, rebuilding.", path)
		return false, nil
	}

	im.log.Infof("Reading cache file %s.", path)
	for legacyID, id := range entries {
		err := exists(ctx, id)
		switch {
		case errors.Is(err, entities.ErrNotFound):
			im.log.WithFields(logrus.Fields{"legacy_id": legacyID, "id": id}).Warnf("cached %s entry no longer exists", t)
			m.SetMissing(legacyID, id)
		case err != nil:
			return false, errors.Wrapf(err, "rehydrate %s cache", t)
		default:
			m.Set(legacyID, id)
		}
	}
	im.metrics.recordCache(t, "hit")
	return true, nil
}

func (im *Importer) writeCache(t Table, m *IDMap) {
	if im.opts.DisableCache || t.CacheFile() == "" {
		return
	}
	path := filepath.Join(im.opts.CacheDir, t.CacheFile())
	if err := idcache.Save(path, m.Resolved()); err != nil {
		im.metrics.recordCache(t, "write_error")
		im.log.WithError(err).Warnf("Couldn't save cache file %s", path)
		return
	}
	im.metrics.recordCache(t, "written")
	im.log.Infof("Wrote cache file %s.", path)
}
