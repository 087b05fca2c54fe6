package prompt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/i18n"
)

var testModels = Models{Image: "img-model", Text: "text-model", Reasoning: "pro-model"}

func img(tag string) Attachment {
	return Attachment{MIMEType: "image/png", Data: []byte(tag)}
}

func TestComposeImagePrompt(t *testing.T) {
	tests := []struct {
		name string
		spec ImageSpec
		refs bool
		want string
	}{
		{
			name: "unset descriptors are omitted",
			spec: ImageSpec{
				Prompt:   "a lighthouse at dusk",
				Style:    Text("Cinematic"),
				Mood:     Text("None"),
				Lighting: Text("Natural"),
				Size:     "1:1",
			},
			want: "a lighthouse at dusk, Style: Cinematic, Lighting: Natural",
		},
		{
			name: "fixed order and mapped size suffix",
			spec: ImageSpec{
				Prompt:         "coffee cup",
				Style:          Text("Photography - Macro"),
				Mood:           Text("Cozy"),
				Lighting:       Text("Warm Golden Light"),
				Camera:         Text("Low Angle"),
				ColorGrade:     Text("Warm"),
				NegativePrompt: Text("text, watermark"),
				Size:           "1080x1350",
			},
			want: "coffee cup, Style: Photography - Macro, Mood: Cozy, Lighting: Warm Golden Light, View/Camera: Low Angle, Color Grade: Warm, exact resolution/aspect ratio: 1080×1350, Exclude: text, watermark",
		},
		{
			name: "reference directive prefix",
			spec: ImageSpec{Prompt: "same layout, blue palette"},
			refs: true,
			want: ReferenceDirective + "same layout, blue palette",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComposeImagePrompt(tt.spec, tt.refs))
		})
	}
}

func TestStyleOf(t *testing.T) {
	assert.Equal(t, "Photography - Cinematic", StyleOf(Text("Photography"), Text("Cinematic")).OrElse(""))
	assert.Equal(t, "Photography", StyleOf(Text("Photography"), Text("None")).OrElse(""))
	assert.False(t, StyleOf(Text("None"), Text("None")).IsSet())
	assert.False(t, StyleOf(None[string](), Text("Cinematic")).IsSet())
}

func TestCameraOf(t *testing.T) {
	assert.Equal(t, "Low Angle, 85mm Portrait Lens", CameraOf(Text("Low Angle"), Text("85mm Portrait Lens"), Text("None")).OrElse(""))
	assert.False(t, CameraOf(Text("None"), None[string](), Text("")).IsSet())
}

func TestBuilder_Synthesize(t *testing.T) {
	b := NewBuilder(testModels)

	t.Run("attachments precede text and ratio defaults to square", func(t *testing.T) {
		refs := []Attachment{img("a"), img("b")}
		p := b.Synthesize(ImageSpec{Prompt: "x", Size: "original"}, refs)
		assert.Equal(t, "img-model", p.Model)
		assert.Equal(t, refs, p.Attachments)
		assert.Equal(t, "1:1", p.AspectRatio)
		assert.True(t, strings.HasPrefix(p.Text, ReferenceDirective))
		assert.Nil(t, p.Seed)
	})

	t.Run("seed is forwarded", func(t *testing.T) {
		p := b.Synthesize(ImageSpec{Prompt: "x", Size: "16:9", Seed: Some[int32](42)}, nil)
		require.NotNil(t, p.Seed)
		assert.Equal(t, int32(42), *p.Seed)
		assert.Equal(t, "16:9", p.AspectRatio)
	})
}

func TestBuilder_Edit(t *testing.T) {
	b := NewBuilder(testModels)
	src := img("src")

	p := b.Edit(EditSpec{Prompt: "remove the background", Mood: Text("Calm"), Size: "original"}, src)
	assert.Equal(t, "remove the background, Mood: Calm", p.Text)
	assert.Empty(t, p.AspectRatio)
	assert.Equal(t, []Attachment{src}, p.Attachments)

	p = b.Edit(EditSpec{Prompt: "crop", Size: "1280x720"}, src)
	assert.Equal(t, "16:9", p.AspectRatio)
	assert.Equal(t, "crop, exact resolution/aspect ratio: 1280×720", p.Text)
}

func TestBuilder_Collage(t *testing.T) {
	b := NewBuilder(testModels)
	p := b.Collage(CollageSpec{Layout: "Balanced Grid", Theme: "Clean Minimalist"}, []Attachment{img("1"), img("2")})

	assert.Contains(t, p.Text, "Layout Style: Balanced Grid.")
	assert.Contains(t, p.Text, "Background Theme: Clean Minimalist.")
	assert.Contains(t, p.Text, "User Instructions: Arrange these images beautifully.")
	assert.Equal(t, "1:1", p.AspectRatio)
	assert.Len(t, p.Attachments, 2)
}

func TestFormatCTAs(t *testing.T) {
	got := FormatCTAs([]CTA{
		{Type: CTAPhone, Value: "09 123 456"},
		{Type: CTAEmail, Value: ""},
		{Type: CTAEmail, Value: "hi@example.com"},
	})
	assert.Equal(t, "📞 09 123 456  📧 hi@example.com", got)
	assert.Empty(t, FormatCTAs([]CTA{{Type: CTAPhone}}))
}

func TestBuilder_SimplePost(t *testing.T) {
	b := NewBuilder(testModels)
	logo, bg := img("logo"), img("bg")

	p := b.SimplePost(PostSpec{
		Headline: "Grand Opening",
		Tagline:  "Fresh every day",
		Content:  "Visit us",
		Address:  Text("12 Main St"),
		Theme:    Text("Luxury & Gold"),
		CTAs:     []CTA{{Type: CTAPhone, Value: "555"}},
		Size:     "1080x1080",
	}, &logo, &bg)

	assert.Equal(t, []Attachment{logo, bg}, p.Attachments)
	assert.Contains(t, p.Text, `Headline: "Grand Opening"`)
	assert.Contains(t, p.Text, `Address: "12 Main St"`)
	assert.Contains(t, p.Text, `Call to Action / Contact Information: "📞 555"`)
	assert.Contains(t, p.Text, "Visual Theme: Luxury & Gold.")
	assert.Equal(t, "1:1", p.AspectRatio)

	p = b.SimplePost(PostSpec{Headline: "h"}, nil, nil)
	assert.Empty(t, p.Attachments)
	assert.NotContains(t, p.Text, "Address:")
	assert.NotContains(t, p.Text, "Visual Theme:")
}

func TestBuilder_Text(t *testing.T) {
	b := NewBuilder(testModels)
	p := b.Text(TextSpec{
		Persona:           "Tech Expert",
		Topic:             "Go generics",
		Platform:          "LinkedIn",
		Tone:              "Professional",
		Length:            "Short",
		UseEmojis:         false,
		AdditionalContext: Text("for beginners"),
		ReferenceURLs:     []string{" ", "https://go.dev"},
		Language:          i18n.Myanmar,
	}, nil)

	assert.Equal(t, "text-model", p.Model)
	assert.Equal(t,
		"You are an expert Content Creator acting as: Tech Expert. Goal: High-quality content for LinkedIn. Tone: Professional. Length: Short. Emojis: No. Language: Myanmar. Return clean Markdown.",
		p.SystemInstruction)
	assert.True(t, strings.HasPrefix(p.Text, "Write content about: \"Go generics\".\n\nContext: for beginners\n\n"))
	assert.Contains(t, p.Text, "Reference links: https://go.dev")
	assert.Empty(t, p.AspectRatio)
}

func TestBuilder_Analyze(t *testing.T) {
	b := NewBuilder(testModels)

	p := b.Analyze(AnalyzeSpec{Language: i18n.English}, img("x"))
	assert.Equal(t, "text-model", p.Model)
	assert.Equal(t, "Act as a senior Art Director. Review this image.  Structure: 1. Executive Summary, 2. Good Points, 3. Points to Fix. User Context: General Analysis", p.Text)

	p = b.Analyze(AnalyzeSpec{Prompt: "logo contrast", Language: i18n.Myanmar}, img("x"))
	assert.Contains(t, p.Text, "Provide response in Myanmar language.")
	assert.Contains(t, p.Text, "User Context: logo contrast")
}

func TestBuilder_Craft(t *testing.T) {
	b := NewBuilder(testModels)

	p := b.Craft(CraftSpec{Draft: "make it pop", Complexity: "Concise"}, nil)
	assert.Equal(t, "pro-model", p.Model)
	assert.Equal(t, `User Input: "make it pop"`, p.Text)
	assert.Contains(t, p.SystemInstruction, `persona: "General Assistant"`)
	assert.Contains(t, p.SystemInstruction, "**Complexity**: Concise.")

	tpl, ok := FindTemplate("midjourney")
	require.True(t, ok)
	p = b.Craft(CraftSpec{Draft: "a fox", Target: tpl.DefaultTarget, Instruction: Text(tpl.Instruction)}, []Attachment{img("ref")})
	assert.Contains(t, p.SystemInstruction, "professional photographer")
	assert.Contains(t, p.SystemInstruction, "**Complexity**: Detailed.")
	assert.Len(t, p.Attachments, 1)
}

func TestBuilder_InterpolatesRawText(t *testing.T) {
	b := NewBuilder(testModels)
	code := "func a() {\n\tfmt.Println(\"hi\")\n}"

	p := b.Craft(CraftSpec{Draft: code}, nil)
	assert.Equal(t, "User Input: \""+code+"\"", p.Text)
	assert.NotContains(t, p.Text, `\n`)

	p = b.Text(TextSpec{Topic: "say \"hello\"\ntwice"}, nil)
	assert.True(t, strings.HasPrefix(p.Text, "Write content about: \"say \"hello\"\ntwice\".\n\n"))

	p = b.SimplePost(PostSpec{Headline: "Line one\nLine two", Content: `50% "off"`}, nil, nil)
	assert.Contains(t, p.Text, "Headline: \"Line one\nLine two\"")
	assert.Contains(t, p.Text, `Body Content: "50% "off""`)
}

func TestOptionJSON(t *testing.T) {
	var v struct {
		A Option[string] `json:"a"`
		B Option[string] `json:"b"`
		C Option[string] `json:"c"`
		D Option[int32]  `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":" Warm ","b":"None","c":null,"d":7}`), &v))
	assert.Equal(t, "Warm", v.A.OrElse(""))
	assert.False(t, v.B.IsSet())
	assert.False(t, v.C.IsSet())
	assert.Equal(t, int32(7), v.D.OrElse(0))

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"Warm","b":null,"c":null,"d":7}`, string(out))
}
