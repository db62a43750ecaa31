/*
Package dedup implements the duplicate-detection pipeline.

A breadth-first walk streams file records into size buckets; buckets that
keep more than one member are then separated by a streaming content
checksum, and checksum groups with at least two members form the final
result. Size grouping always drains the walk completely before any hashing
starts, so files without a possible duplicate are never read.

Basic usage:

	finder := dedup.NewFinder(dedup.Options{
		Patterns: []string{"*.jpg"},
	}, afero.NewOsFs(), log)

	result, err := finder.Find(ctx, "/photos")
*/
package dedup

import (
	"context"
	"io"

	"github.com/spf13/afero"

	"github.com/sonemaro/dupescan/pkg/hasher"
	"github.com/sonemaro/dupescan/pkg/logger"
	"github.com/sonemaro/dupescan/pkg/scanner"
	"github.com/sonemaro/dupescan/pkg/worker"
)

// Finder runs duplicate searches. One invocation is one full pass: it
// either completes with a result or fails with the first propagated error;
// there are no partial results alongside an error.
type Finder struct {
	opts Options
	fs   afero.Fs
	log  logger.Logger
}

// NewFinder creates a Finder over the given filesystem.
func NewFinder(opts Options, fs afero.Fs, log logger.Logger) *Finder {
	return &Finder{
		opts: opts,
		fs:   fs,
		log:  log,
	}
}

// sizeBuckets maps byte length to the files of that length, remembering
// first-seen order of the sizes.
type sizeBuckets struct {
	members map[int64][]scanner.FileRecord
	sizes   []int64
}

// Find walks root and returns its duplicate groups.
func (f *Finder) Find(ctx context.Context, root string) (*DuplicateFiles, error) {
	f.log.WithFields(logger.Fields{
		"root":     root,
		"patterns": f.opts.Patterns,
		"sizeOnly": f.opts.SizeOnly,
		"workers":  f.opts.Workers,
	}).Info("Starting duplicate search")

	buckets, err := f.groupBySize(ctx, root)
	if err != nil {
		return nil, err
	}

	var result *DuplicateFiles
	if f.opts.SizeOnly {
		result = bucketsAsGroups(buckets)
	} else {
		result, err = f.aggregateByContent(ctx, buckets)
		if err != nil {
			return nil, err
		}
	}

	f.log.WithFields(logger.Fields{
		"groups":      len(result.Groups),
		"files":       result.TotalFiles(),
		"reclaimable": result.ReclaimableBytes(),
	}).Info("Duplicate search completed")

	return result, nil
}

// groupBySize drains the walker into size buckets and discards buckets with
// a single member. This is a full materialization point: memory is
// proportional to the filter-surviving file set, not the whole tree.
func (f *Finder) groupBySize(ctx context.Context, root string) (*sizeBuckets, error) {
	w, err := scanner.NewWalker(f.fs, root, scanner.FilterOptions{
		Patterns:      f.opts.Patterns,
		CaseSensitive: f.opts.CaseSensitive,
		ExcludeEmpty:  f.opts.ExcludeEmpty,
	}, f.log)
	if err != nil {
		return nil, err
	}

	all := &sizeBuckets{members: make(map[int64][]scanner.FileRecord)}
	var total int

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := w.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(all.members[rec.Size]) == 0 {
			all.sizes = append(all.sizes, rec.Size)
		}
		all.members[rec.Size] = append(all.members[rec.Size], rec)
		total++
	}

	kept := &sizeBuckets{members: make(map[int64][]scanner.FileRecord)}
	for _, size := range all.sizes {
		files := all.members[size]
		if len(files) < 2 {
			continue
		}
		kept.members[size] = files
		kept.sizes = append(kept.sizes, size)
	}

	f.log.WithFields(logger.Fields{
		"filesScanned": total,
		"buckets":      len(kept.sizes),
	}).Debug("Size grouping completed")

	return kept, nil
}

// bucketsAsGroups turns surviving size buckets directly into groups; this
// is the size-only comparison mode.
func bucketsAsGroups(buckets *sizeBuckets) *DuplicateFiles {
	result := &DuplicateFiles{}
	for _, size := range buckets.sizes {
		result.Groups = append(result.Groups, Group{
			Size:  size,
			Files: buckets.members[size],
		})
	}
	return result
}

// aggregateByContent hashes every bucket member and regroups by checksum,
// discarding groups that end up with a single member.
func (f *Finder) aggregateByContent(ctx context.Context, buckets *sizeBuckets) (*DuplicateFiles, error) {
	var candidates []scanner.FileRecord
	for _, size := range buckets.sizes {
		candidates = append(candidates, buckets.members[size]...)
	}

	digests, err := f.digestAll(ctx, candidates)
	if err != nil {
		return nil, err
	}

	result := &DuplicateFiles{}
	for _, size := range buckets.sizes {
		byDigest := make(map[uint64][]scanner.FileRecord)
		var order []uint64

		for _, rec := range buckets.members[size] {
			d := digests[rec.Path]
			if len(byDigest[d]) == 0 {
				order = append(order, d)
			}
			byDigest[d] = append(byDigest[d], rec)
		}

		for _, d := range order {
			files := byDigest[d]
			if len(files) < 2 {
				continue
			}
			result.Groups = append(result.Groups, Group{Size: size, Files: files})
		}
	}

	return result, nil
}

// digestAll computes the checksum of every candidate. With Workers > 1 the
// hashing fans out across a worker pool; membership of the final groups is
// identical either way because results are keyed by path.
func (f *Finder) digestAll(ctx context.Context, files []scanner.FileRecord) (map[string]uint64, error) {
	if f.opts.Workers > 1 {
		return f.digestParallel(ctx, files)
	}

	digests := make(map[string]uint64, len(files))
	for _, rec := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sum, err := hasher.Sum(f.fs, rec.Path)
		if err != nil {
			return nil, err
		}
		digests[rec.Path] = sum
	}

	return digests, nil
}

type digestResult struct {
	path string
	sum  uint64
}

func (f *Finder) digestParallel(ctx context.Context, files []scanner.FileRecord) (map[string]uint64, error) {
	pool, err := worker.NewPool(worker.Config{
		Workers:   f.opts.Workers,
		RateLimit: f.opts.RateLimit,
	})
	if err != nil {
		return nil, err
	}

	if err := pool.Start(ctx); err != nil {
		return nil, err
	}
	defer func() {
		if err := pool.Stop(); err != nil {
			f.log.WithFields(logger.Fields{
				"error": err,
			}).Warn("Error stopping hash worker pool")
		}
	}()

	for i, rec := range files {
		rec := rec
		task := worker.Task{
			ID: i,
			Execute: func(ctx context.Context) (worker.Result, error) {
				sum, err := hasher.Sum(f.fs, rec.Path)
				if err != nil {
					return worker.Result{}, err
				}
				return worker.Result{Data: digestResult{path: rec.Path, sum: sum}}, nil
			},
		}
		if err := pool.Submit(task); err != nil {
			return nil, err
		}
	}

	results, err := pool.Wait()
	if err != nil {
		return nil, err
	}

	digests := make(map[string]uint64, len(results))
	for _, r := range results {
		dr := r.Data.(digestResult)
		digests[dr.path] = dr.sum
	}

	return digests, nil
}
