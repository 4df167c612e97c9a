// Package ioutils provides file system and image utilities.
//
// This package contains functions for:
//   - File writing and directory creation
//   - Filename sanitization for cross-platform compatibility
//   - Best-effort removal of temporary files
//   - Image scaling and PNG encoding
//
// # File Operations
//
//	err := ioutils.EnsureDir(workDir)
//	err = ioutils.WriteFile(ctx, filepath.Join(workDir, "code.png"), data)
//
//	// Remove temporary files, collecting what could not be deleted
//	for _, f := range ioutils.RemoveFiles(paths) {
//	    log.Printf("could not remove %s: %v", f.Path, f.Err)
//	}
//
// # Filename Sanitization
//
//	safe := ioutils.SanitizeFileName("Party: 80s/90s") // Returns "Party_ 80s_90s"
//	out := ioutils.DeckFileName("Party Mix")           // Returns "Hitster_Party Mix.pdf"
//
// # Image Processing
//
// The ImageService scales code images without smoothing:
//
//	svc := ioutils.NewImageService()
//	scaled := svc.ScaleSquare(img, 600)
//	data, _ := svc.EncodePNG(scaled)
package ioutils
