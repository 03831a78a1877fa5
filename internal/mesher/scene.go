package mesher

import (
	"runtime"
	"sync"

	"github.com/Faultbox/vox2obj/pkg/formats"
)

// PolygonizeScene meshes every model of a scene, returning one Group per
// model in model order. Models are meshed concurrently by up to workers
// goroutines; workers <= 0 uses GOMAXPROCS.
func PolygonizeScene(vox *formats.VOX, workers int) []Group {
	groups := make([]Group, len(vox.Models))
	if len(groups) == 0 {
		return groups
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(groups))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				groups[i] = Polygonize(vox.Models[i])
			}
		}()
	}

	for i := range vox.Models {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return groups
}
