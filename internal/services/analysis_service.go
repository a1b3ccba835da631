package services

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/HugoJF/boxbox/internal/config"
	"github.com/HugoJF/boxbox/internal/helpers"
	"github.com/HugoJF/boxbox/internal/vision"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"math"
	"sort"
	"strings"
)

const DefaultProfile = "fast"

const analysisPrompt = "Analyze this image and extract inventory information. " +
	"Identify the item, provide a brief description of the item and its condition, " +
	"and estimate the quantity visible."

const textModeInstruction = "\n\nRespond with a single JSON object and nothing else, using exactly this shape:\n" +
	"```json\n{\"name\": \"<name or title of the item>\", \"description\": \"<brief description>\", \"quantity\": <positive number>}\n```"

type Analysis struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

type ProfileAnalysis struct {
	Profile  string
	Model    string
	Analysis *Analysis
	Err      error
}

type AnalysisService interface {
	Analyze(ctx context.Context, image, profile string) (*Analysis, error)
	// Compare runs one analysis per profile concurrently. Individual failures
	// are reported per profile and never fail the whole call.
	Compare(ctx context.Context, image string, profiles []string) ([]ProfileAnalysis, error)
	Profiles() []string
}

type analysisServiceImpl struct {
	model      vision.Model
	profiles   map[string]config.ProfileConfig
	logService LogService
}

func NewAnalysisService(model vision.Model, configuration *config.Configuration, logService LogService) AnalysisService {
	return &analysisServiceImpl{
		model:      model,
		profiles:   configuration.Analysis.Profiles,
		logService: logService,
	}
}

func (s *analysisServiceImpl) Profiles() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *analysisServiceImpl) Analyze(ctx context.Context, image, profile string) (*Analysis, error) {
	if helpers.IsBlank(image) {
		return nil, newValidationError("image is required")
	}
	if profile == "" {
		profile = DefaultProfile
	}
	profileConfig, ok := s.profiles[profile]
	if !ok {
		return nil, newValidationError(fmt.Sprintf("unknown profile %q", profile))
	}

	request := vision.Request{
		Model:  profileConfig.Model,
		Prompt: analysisPrompt,
		Image:  image,
		JSON:   profileConfig.Structured,
	}
	if !profileConfig.Structured {
		request.Prompt += textModeInstruction
	}

	reply, err := s.model.Generate(ctx, request)
	if err != nil {
		s.logService.Log.WithFields(logrus.Fields{
			"profile": profile,
			"model":   profileConfig.Model,
			"error":   err.Error(),
		}).Error("Image analysis request failed")
		return nil, newUpstreamError("failed to analyze item", err)
	}

	payload := reply
	if !profileConfig.Structured {
		payload = helpers.ExtractJSONBlock(reply)
	}
	analysis, err := ParseAnalysis(payload)
	if err != nil {
		s.logService.Log.WithFields(logrus.Fields{
			"profile": profile,
			"model":   profileConfig.Model,
			"error":   err.Error(),
		}).Warn("Model reply rejected")
		return nil, newUpstreamError("model reply could not be parsed", err)
	}
	return analysis, nil
}

func (s *analysisServiceImpl) Compare(ctx context.Context, image string, profiles []string) ([]ProfileAnalysis, error) {
	if helpers.IsBlank(image) {
		return nil, newValidationError("image is required")
	}
	if len(profiles) == 0 {
		profiles = s.Profiles()
	}
	for _, profile := range profiles {
		if _, ok := s.profiles[profile]; !ok {
			return nil, newValidationError(fmt.Sprintf("unknown profile %q", profile))
		}
	}

	results := make([]ProfileAnalysis, len(profiles))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, profile := range profiles {
		i, profile := i, profile
		group.Go(func() error {
			analysis, err := s.Analyze(groupCtx, image, profile)
			results[i] = ProfileAnalysis{
				Profile:  profile,
				Model:    s.profiles[profile].Model,
				Analysis: analysis,
				Err:      err,
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ParseAnalysis decodes a model reply and checks it the same way regardless of
// how the reply was obtained: the name must be non-empty and the quantity a
// positive finite number, rounded to the nearest integer.
func ParseAnalysis(payload string) (*Analysis, error) {
	var raw struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Quantity    *float64 `json:"quantity"`
	}
	decoder := json.NewDecoder(strings.NewReader(payload))
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if raw.Name == nil || strings.TrimSpace(*raw.Name) == "" {
		return nil, fmt.Errorf("name must be a non-empty string")
	}
	if raw.Quantity == nil || math.IsNaN(*raw.Quantity) || math.IsInf(*raw.Quantity, 0) || *raw.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be a positive number")
	}
	analysis := &Analysis{
		Name:     strings.TrimSpace(*raw.Name),
		Quantity: int(math.Max(1, math.Round(*raw.Quantity))),
	}
	if raw.Description != nil {
		analysis.Description = strings.TrimSpace(*raw.Description)
	}
	return analysis, nil
}
