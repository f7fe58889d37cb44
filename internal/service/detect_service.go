package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"parkvue/internal/entities"
)

const detectPrompt = `Analyze this vehicle image and extract: 1) The license/number plate text in capital letters with no spaces/hyphens (e.g., DL01AB1234), 2) The vehicle type (2wheeler for bike/scooter, 3wheeler for auto/rickshaw, 4wheeler for car/suv/truck). Return ONLY in this exact format: "NUMBERPLATE|VEHICLETYPE". Example: "MH12AB1234|4wheeler" or "DL01CD5678|2wheeler". If you cannot detect the plate or type, use "NOT_DETECTED" for that field.`

var (
	nonAlphaNum = regexp.MustCompile(`[^A-Z0-9]`)
	nonLowerNum = regexp.MustCompile(`[^a-z0-9]`)
)

type DetectService struct {
	model *genai.GenerativeModel
}

func NewDetectService(ctx context.Context, apiKey string) (*DetectService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("error creating gemini client: %w", err)
	}
	return &DetectService{model: client.GenerativeModel("gemini-2.5-flash")}, nil
}

// DetectPlate sends the vehicle image to the vision model and parses the
// plate and vehicle type out of its reply. imageBase64 may be a bare base64
// string or a data URL.
func (s *DetectService) DetectPlate(ctx context.Context, imageBase64 string) (*entities.DetectionResult, error) {
	mimeType := "jpeg"
	if idx := strings.Index(imageBase64, ";base64,"); idx >= 0 {
		header := imageBase64[:idx]
		if strings.HasPrefix(header, "data:image/") {
			mimeType = strings.TrimPrefix(header, "data:image/")
		}
		imageBase64 = imageBase64[idx+len(";base64,"):]
	}
	imageData, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return nil, fmt.Errorf("error decoding image data: %w", err)
	}

	resp, err := s.model.GenerateContent(ctx, genai.ImageData(mimeType, imageData), genai.Text(detectPrompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from vision model")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	result := parseDetection(sb.String())
	return &result, nil
}

// parseDetection interprets the model's "NUMBERPLATE|VEHICLETYPE" reply.
// Unknown vehicle types fall back to 4wheeler; plates outside 6-15 characters
// count as not detected.
func parseDetection(detectedText string) entities.DetectionResult {
	detectedText = strings.ToUpper(strings.TrimSpace(detectedText))
	parts := strings.Split(detectedText, "|")

	numberPlate := "NOT_DETECTED"
	if len(parts) > 0 {
		if p := nonAlphaNum.ReplaceAllString(parts[0], ""); p != "" {
			numberPlate = p
		}
	}

	vehicleType := ""
	if len(parts) > 1 {
		vehicleType = nonLowerNum.ReplaceAllString(strings.ToLower(parts[1]), "")
	}
	switch vehicleType {
	case "2wheeler", "3wheeler", "4wheeler":
	default:
		vehicleType = "4wheeler"
	}

	if numberPlate == "NOTDETECTED" || numberPlate == "NOT_DETECTED" || len(numberPlate) < 6 || len(numberPlate) > 15 {
		return entities.DetectionResult{
			Success:     false,
			VehicleType: vehicleType,
			Error:       "could not detect a valid number plate",
		}
	}
	return entities.DetectionResult{
		Success:     true,
		NumberPlate: numberPlate,
		VehicleType: vehicleType,
	}
}
