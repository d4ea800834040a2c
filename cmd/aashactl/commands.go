package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/namaste-emily/aasha/backend/internal/app"
	"github.com/namaste-emily/aasha/backend/internal/config"
	"github.com/namaste-emily/aasha/backend/internal/content"
	speechmodel "github.com/namaste-emily/aasha/backend/internal/model/speech"
	"github.com/namaste-emily/aasha/backend/internal/service/ai"
	"github.com/namaste-emily/aasha/backend/internal/service/speech"
)

func newSSMLCmd() *cobra.Command {
	var fast bool
	cmd := &cobra.Command{
		Use:     "ssml <text>",
		GroupID: "speech",
		Short:   "Print the SSML document sent to Azure for text",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			svc := speech.NewService(app.SpeechConfig(cfg))
			slow := !fast
			doc := svc.BuildSSML(speechmodel.SynthesisRequest{Text: strings.Join(args, " "), Slow: &slow})

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "<!-- voice=%s lang=%s rate=%s -->\n", doc.Voice.Name, doc.Voice.Lang, doc.Rate)
			_, err = fmt.Fprintln(out, doc.Markup)
			return err
		},
	}
	cmd.Flags().BoolVar(&fast, "fast", false, "use the normal speaking rate instead of the slowed one")
	return cmd
}

func newPromptCmd() *cobra.Command {
	var scene, level string
	cmd := &cobra.Command{
		Use:     "prompt",
		GroupID: "ai",
		Short:   "Print the roleplay system prompt for a scene and level",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			bundle, err := content.Load(cmd.Context(), content.Paths{
				Persona: cfg.Content.PersonaPath,
				Scenes:  cfg.Content.ScenesPath,
				Phrases: cfg.Content.PhrasesPath,
			})
			if err != nil {
				return err
			}

			pm := ai.NewPersonaPromptManager(bundle.PersonaStore())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), pm.BuildSystemPrompt(scene, level))
			return err
		},
	}
	cmd.Flags().StringVar(&scene, "scene", "market", "scene id")
	cmd.Flags().StringVar(&level, "level", ai.LevelBeginner, "learner level")
	return cmd
}

func newSpeakCmd() *cobra.Command {
	var (
		out     string
		engine  string
		fast    bool
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:     "speak <text>",
		GroupID: "speech",
		Short:   "Synthesize text to an audio file",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if engine != "" {
				cfg.Speech.Engine = engine
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			svc := speech.NewService(app.SpeechConfig(cfg))
			slow := !fast
			res, err := svc.Synthesize(ctx, speechmodel.SynthesisRequest{Text: strings.Join(args, " "), Slow: &slow})
			if err != nil {
				return fmt.Errorf("synthesize with %s: %w", svc.Engine(), err)
			}

			if err := os.WriteFile(out, res.Audio, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes to %s (engine=%s voice=%s)\n", len(res.Audio), out, svc.Engine(), res.Voice)
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "speech.mp3", "output file")
	cmd.Flags().StringVar(&engine, "engine", "", "azure or openai, overrides SPEECH_ENGINE")
	cmd.Flags().BoolVar(&fast, "fast", false, "use the normal speaking rate")
	cmd.Flags().DurationVar(&timeout, "timeout", 45*time.Second, "request timeout")
	return cmd
}
