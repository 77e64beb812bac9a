package tasks

import (
	"fmt"

	"github.com/desertthunder/mcview/internal/models"
)

func fetchingResultsUpdate(step, total, n int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchResults,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Running %d simulations...", step, total, n),
	}
}

func exportCompletedUpdate(step, total int, entry models.ManifestEntry) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportResults,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %d simulations (%d files)", step, total, entry.Simulations, len(entry.Files)),
		Data:    entry,
	}
}

func exportFailedUpdate(step, total int, entry models.ManifestEntry) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportResults,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %d simulations: %s", step, total, entry.Simulations, entry.Error),
		Data:    entry,
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing manifest to %s", path),
	}
}
