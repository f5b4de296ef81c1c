package content

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed packs/*.yaml
var packFS embed.FS

// loadPack reads a pack by file name.
// Search order: customDir/<name> -> ~/.parlor/content/<name> -> ./content/<name> -> embedded.
func loadPack(name, customDir string, out any) error {
	if customDir != "" {
		path := filepath.Join(customDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("content: failed to read pack %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("content: failed to parse pack %s: %w", path, err)
		}
		return nil
	}

	if userPath := userContentPath(name); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("content", name)); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	data, err := packFS.ReadFile("packs/" + name)
	if err != nil {
		return fmt.Errorf("content: no embedded pack %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("content: failed to parse embedded pack %s: %w", name, err)
	}
	return nil
}

// userContentPath returns the per-user override path for a pack, or empty
// if home is unavailable.
func userContentPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".parlor", "content", name)
}

// Words loads the word-guess pack.
func Words(customDir string) ([]WordLevel, error) {
	var pack struct {
		Levels []WordLevel `yaml:"levels"`
	}
	if err := loadPack("words.yaml", customDir, &pack); err != nil {
		return nil, err
	}
	if len(pack.Levels) == 0 {
		return nil, fmt.Errorf("content: words pack has no levels")
	}
	return pack.Levels, nil
}

// Quiz loads the quiz pack.
func Quiz(customDir string) ([]QuizLevel, error) {
	var pack struct {
		Levels []QuizLevel `yaml:"levels"`
	}
	if err := loadPack("quiz.yaml", customDir, &pack); err != nil {
		return nil, err
	}
	if len(pack.Levels) == 0 {
		return nil, fmt.Errorf("content: quiz pack has no levels")
	}
	return pack.Levels, nil
}

// Numbers loads the number-guess pack.
func Numbers(customDir string) ([]NumberLevel, error) {
	var pack struct {
		Levels []NumberLevel `yaml:"levels"`
	}
	if err := loadPack("numbers.yaml", customDir, &pack); err != nil {
		return nil, err
	}
	if len(pack.Levels) == 0 {
		return nil, fmt.Errorf("content: numbers pack has no levels")
	}
	return pack.Levels, nil
}

// Patterns loads the pattern-repeat pack.
func Patterns(customDir string) ([]PatternLevel, error) {
	var pack struct {
		Levels []PatternLevel `yaml:"levels"`
	}
	if err := loadPack("patterns.yaml", customDir, &pack); err != nil {
		return nil, err
	}
	if len(pack.Levels) == 0 {
		return nil, fmt.Errorf("content: patterns pack has no levels")
	}
	return pack.Levels, nil
}

// Memory loads the pair-matching pack.
func Memory(customDir string) ([]MemoryLevel, error) {
	var pack struct {
		Levels []MemoryLevel `yaml:"levels"`
	}
	if err := loadPack("memory.yaml", customDir, &pack); err != nil {
		return nil, err
	}
	if len(pack.Levels) == 0 {
		return nil, fmt.Errorf("content: memory pack has no levels")
	}
	return pack.Levels, nil
}

// Adventure loads the adventure pack.
func Adventure(customDir string) ([]AdventureLevel, error) {
	var pack struct {
		Levels []AdventureLevel `yaml:"levels"`
	}
	if err := loadPack("adventure.yaml", customDir, &pack); err != nil {
		return nil, err
	}
	if len(pack.Levels) == 0 {
		return nil, fmt.Errorf("content: adventure pack has no levels")
	}
	return pack.Levels, nil
}
