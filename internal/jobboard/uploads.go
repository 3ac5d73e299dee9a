package jobboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jonathan/job-matcher/internal/db"
	"github.com/jonathan/job-matcher/internal/ingestion"
	"github.com/jonathan/job-matcher/internal/skills"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// uploadTimeLayout prefixes stored resume names so repeated uploads of the
// same file never collide.
const uploadTimeLayout = "20060102_150405_"

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// ResumeUpload is the result of a successful resume upload.
type ResumeUpload struct {
	Resume db.Resume `json:"resume"`
	Skills []string  `json:"skills"`
}

// UploadResume stores a candidate's resume file, decodes its text, saves it
// and links the skills found in it. Skill linking is best effort. Files
// that decode to no text are kept with empty text.
func (s *Service) UploadResume(ctx context.Context, candidateID uuid.UUID, originalName string, data []byte) (*ResumeUpload, error) {
	if strings.TrimSpace(originalName) == "" {
		return nil, fmt.Errorf("%w: no file selected", ErrUnsupportedFile)
	}
	if s.opts.MaxUploadBytes > 0 && int64(len(data)) > s.opts.MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrFileTooLarge, len(data), s.opts.MaxUploadBytes)
	}
	if !ingestion.AllowedExtension(originalName) {
		return nil, fmt.Errorf("%w: allowed types are txt, pdf, doc, docx", ErrUnsupportedFile)
	}

	text, err := ingestion.ExtractText(originalName, data)
	if err != nil {
		if errors.Is(err, ingestion.ErrUnsupportedFormat) {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFile, err)
		}
		s.logger.Warn("resume text extraction failed", "candidate_id", candidateID, "file", originalName, "error", err)
		text = ""
	}

	stored := StoredFilename(s.now(), originalName)
	if err := saveUpload(s.opts.UploadDir, stored, data); err != nil {
		return nil, err
	}

	resume, err := s.store.CreateResume(ctx, candidateID, stored, originalName, text)
	if err != nil {
		if rmErr := os.Remove(filepath.Join(s.opts.UploadDir, stored)); rmErr != nil {
			s.logger.Warn("failed to remove orphaned upload", "file", stored, "error", rmErr)
		}
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}

	found := s.extractor.Extract(text)
	linked := make([]string, 0, len(found))
	for _, name := range found {
		if err := s.linkSkill(ctx, name, func(id skills.SkillID) error {
			return s.store.LinkCandidateSkill(ctx, candidateID, id)
		}); err != nil {
			s.logger.Warn("failed to link candidate skill", "candidate_id", candidateID, "skill", name, "error", err)
			continue
		}
		linked = append(linked, name)
	}

	s.logger.Info("resume uploaded", "candidate_id", candidateID, "resume_id", resume.ID, "skills", len(linked))
	return &ResumeUpload{Resume: *resume, Skills: linked}, nil
}

// StoredFilename builds the on-disk name of an upload: a timestamp prefix
// followed by the sanitized original name.
func StoredFilename(t time.Time, originalName string) string {
	return t.Format(uploadTimeLayout) + SecureFilename(originalName)
}

// SecureFilename reduces a client-supplied file name to a safe base name:
// accents are folded to ASCII, directories are dropped, whitespace becomes
// "_" and anything outside [A-Za-z0-9_.-] is removed. An empty result
// becomes "resume" plus the original extension.
func SecureFilename(name string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		name,
	)
	if err != nil {
		folded = name
	}

	folded = strings.ReplaceAll(folded, "\\", "/")
	folded = folded[strings.LastIndex(folded, "/")+1:]
	folded = strings.Join(strings.Fields(folded), "_")
	folded = unsafeFilenameChars.ReplaceAllString(folded, "")
	folded = strings.Trim(folded, "._")

	if folded == "" {
		return "resume" + strings.ToLower(filepath.Ext(name))
	}
	return folded
}

func saveUpload(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write upload %s: %w", name, err)
	}
	return nil
}
