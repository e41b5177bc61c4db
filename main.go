package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	"msp-onboarding-mailer/internal/compose"
	"msp-onboarding-mailer/internal/config"
	"msp-onboarding-mailer/internal/i18n"
	"msp-onboarding-mailer/internal/lambda"
	"msp-onboarding-mailer/internal/ses"
	"msp-onboarding-mailer/internal/tiers"
	"msp-onboarding-mailer/internal/types"
)

// Version information
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Check if running in Lambda environment
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.StartLambdaMode()
		return
	}

	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "compose":
		handleComposeCommand()
	case "send":
		handleSendCommand()
	case "tiers":
		handleTiersCommand()
	case "version":
		showVersion()
	case "help", "--help", "-h":
		showUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		showUsage()
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Printf("MSP Onboarding Mailer\n\n")
	fmt.Printf("USAGE:\n")
	fmt.Printf("  msp-onboarding-mailer <command> [options]\n\n")
	fmt.Printf("COMMANDS:\n")
	fmt.Printf("  compose               Render an onboarding email from a request file\n")
	fmt.Printf("  send                  Render and deliver an onboarding email via SESv2\n")
	fmt.Printf("  tiers                 List the support tier catalog\n")
	fmt.Printf("  version               Show version information\n")
	fmt.Printf("  help                  Show this help message\n\n")
	fmt.Printf("COMPOSE OPTIONS:\n")
	fmt.Printf("  -request <file>       Generation request JSON file (required)\n")
	fmt.Printf("  -out <prefix>         Output file prefix; writes <prefix>.html and <prefix>.txt\n")
	fmt.Printf("  -config <file>        Configuration file (default: config.json)\n\n")
	fmt.Printf("SEND OPTIONS:\n")
	fmt.Printf("  -request <file>       Generation request JSON file (required)\n")
	fmt.Printf("  -to <addresses>       Comma-separated recipient override\n")
	fmt.Printf("  -cc <addresses>       Comma-separated CC addresses\n")
	fmt.Printf("  -config <file>        Configuration file (default: config.json)\n")
}

func showVersion() {
	fmt.Printf("msp-onboarding-mailer %s (build %s, commit %s)\n", Version, BuildTime, GitCommit)
}

// loadRequest reads the request file and applies configured defaults
func loadRequest(requestFile string, configFile string) (*types.GenerationRequest, *types.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	data, err := os.ReadFile(requestFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read request file %s: %w", requestFile, err)
	}

	var req types.GenerationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, nil, fmt.Errorf("failed to parse request file %s: %w", requestFile, err)
	}

	config.ApplyRequestDefaults(&req, cfg)
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	return &req, cfg, nil
}

func composeRequest(req *types.GenerationRequest) compose.Result {
	composer := compose.NewComposer(tiers.DefaultCatalog(), i18n.MustNewBundle())
	result := composer.Compose(*req)
	for _, warning := range result.Warnings {
		log.Printf("Warning [%s]: %s", warning.Code, warning.Detail)
	}
	return result
}

func handleComposeCommand() {
	fs := flag.NewFlagSet("compose", flag.ExitOnError)
	requestFile := fs.String("request", "", "Generation request JSON file")
	outPrefix := fs.String("out", "onboarding-email", "Output file prefix")
	configFile := fs.String("config", "config.json", "Configuration file")
	fs.Parse(os.Args[2:])

	if *requestFile == "" {
		fmt.Println("Error: -request is required")
		fs.Usage()
		os.Exit(1)
	}

	req, _, err := loadRequest(*requestFile, *configFile)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	result := composeRequest(req)

	htmlPath := *outPrefix + ".html"
	textPath := *outPrefix + ".txt"
	if err := os.WriteFile(htmlPath, []byte(result.Email.HTML), 0644); err != nil {
		log.Fatalf("Error: failed to write %s: %v", htmlPath, err)
	}
	if err := os.WriteFile(textPath, []byte(result.Email.PlainText), 0644); err != nil {
		log.Fatalf("Error: failed to write %s: %v", textPath, err)
	}

	fmt.Printf("Subject: %s\n", result.Email.Subject)
	fmt.Printf("Wrote %s and %s (%d warnings)\n", htmlPath, textPath, len(result.Warnings))
}

func handleSendCommand() {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	requestFile := fs.String("request", "", "Generation request JSON file")
	toOverride := fs.String("to", "", "Comma-separated recipient override")
	ccList := fs.String("cc", "", "Comma-separated CC addresses")
	configFile := fs.String("config", "", "Configuration file")
	fs.Parse(os.Args[2:])

	if *requestFile == "" {
		fmt.Println("Error: -request is required")
		fs.Usage()
		os.Exit(1)
	}
	if *configFile == "" {
		*configFile = config.GetConfigPath() + "config.json"
	}

	req, cfg, err := loadRequest(*requestFile, *configFile)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		log.Fatalf("Error: invalid configuration: %v", err)
	}

	to := []string{req.RecipientEmail}
	if *toOverride != "" {
		to = strings.Split(*toOverride, ",")
	}

	result := composeRequest(req)

	ctx := context.Background()
	sender, err := ses.NewSender(ctx, cfg.AWSRegion, cfg.Credentials)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	var cc []string
	if *ccList != "" {
		cc = strings.Split(*ccList, ",")
	}

	messageID, err := sender.Send(ctx, result.Email, req.SenderEmail, to, cc)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	fmt.Printf("Sent request %s (MessageId: %s)\n", req.RequestID, messageID)
}

func handleTiersCommand() {
	catalog := tiers.DefaultCatalog()
	fmt.Printf("Support tier catalog:\n\n")
	for _, key := range catalog.Keys() {
		tier, _ := catalog.Lookup(key)
		requests := fmt.Sprintf("%d", tier.IncludedRequestCount)
		if tier.IncludedRequestCount == tiers.UnlimitedRequests {
			requests = "unlimited"
		}
		fmt.Printf("  %-10s contacts=%d tenants=%d hours=%s requests=%s\n",
			tier.Key, tier.AuthorizedContactLimit, tier.TenantLimit, tier.SupportHours, requests)
	}
}
