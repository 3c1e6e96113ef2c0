package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentFor(t *testing.T) {
	t.Run("funny variant", func(t *testing.T) {
		c := ContentFor("funny")
		assert.Equal(t, "🎭 Sample Content (Now with 100% more fun!)", c.Title)
		assert.Equal(t, "Behold! This magical paragraph shows you how our awesome overlay makes boring websites "+
			"suddenly interesting. It's like giving your text a personality makeover!", c.Description)
		assert.Equal(t, []string{
			"✨ Feature 1: Fonts that actually look good (shocking!)",
			"🎨 Feature 2: Themes that don't hurt your eyes",
			"🚀 Feature 3: Writing that doesn't put you to sleep",
		}, c.Features)
	})

	t.Run("unknown returns default", func(t *testing.T) {
		assert.Equal(t, ContentFor("default"), ContentFor("nonexistent"))
		assert.Equal(t, "Sample Content", ContentFor("").Title)
	})

	t.Run("every writing style has content", func(t *testing.T) {
		for _, ws := range WritingStyles {
			c := ContentFor(ws)
			assert.NotEmpty(t, c.Title, ws)
			assert.Len(t, c.Features, 3, ws)
			assert.NotEmpty(t, WritingStyleHints[ws], ws)
		}
	})

	t.Run("features are copied", func(t *testing.T) {
		c := ContentFor("simple")
		c.Features[0] = "changed"
		assert.Equal(t, "Change fonts easily", ContentFor("simple").Features[0])
	})
}

func TestRender(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		v := Render(Defaults())
		assert.Empty(t, v.ThemeClass)
		assert.Empty(t, v.FontClass)
		assert.Equal(t, "inherit", v.FontFamily)
		assert.Equal(t, "100%", v.FontSize)
		assert.Nil(t, v.CustomColors)
		assert.Equal(t, []string{}, v.Classes())
		assert.Equal(t, "Sample Content", v.Content.Title)
	})

	t.Run("styled", func(t *testing.T) {
		s := Defaults()
		s.Theme, s.FontStyle, s.FontSize, s.WritingStyle = "dark", "monospace", 150, "simple"
		s.HighContrast, s.ReducedMotion = true, true
		v := Render(s)
		assert.Equal(t, "theme-dark", v.ThemeClass)
		assert.Equal(t, "font-monospace", v.FontClass)
		assert.Equal(t, `"Courier New", Consolas, monospace`, v.FontFamily)
		assert.Equal(t, "150%", v.FontSize)
		assert.Nil(t, v.CustomColors)
		assert.Equal(t, []string{"theme-dark", "font-monospace", "high-contrast", "reduced-motion"}, v.Classes())
		assert.Equal(t, "Easy Example", v.Content.Title)
	})

	t.Run("custom theme exposes colors", func(t *testing.T) {
		s := Defaults()
		s.Theme = ThemeCustom
		s.CustomColors.Background = "black"
		v := Render(s)
		assert.Equal(t, "theme-custom", v.ThemeClass)
		if assert.NotNil(t, v.CustomColors) {
			assert.Equal(t, "black", v.CustomColors.Background)
		}
	})
}
