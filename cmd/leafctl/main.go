// Command leafctl exercises a running leaf disease API from the terminal.
//
//	leafctl health
//	leafctl predict leaf.jpg [CNN|MobileNetV2|ViT|U-Net]
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8000", "API base URL")
	timeout := flag.Duration("timeout", 60*time.Second, "request timeout")
	flag.Usage = usage
	flag.Parse()

	client := NewClient(*baseURL, *timeout)
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "health":
		err = runHealth(client)
	case "predict":
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		modelName := "CNN"
		if len(args) > 2 {
			modelName = args[2]
		}
		err = runPredict(client, args[1], modelName)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: leafctl [-url URL] health")
	fmt.Fprintln(os.Stderr, "       leafctl [-url URL] predict <image_path> [model_name]")
	fmt.Fprintln(os.Stderr, "Available models: CNN, MobileNetV2, ViT, U-Net")
	flag.PrintDefaults()
}

func runHealth(client *Client) error {
	health, err := client.Health()
	if err != nil {
		return err
	}
	fmt.Printf("Status: %s\n", health.Status)
	fmt.Println("Models loaded:")
	names := make([]string, 0, len(health.ModelsLoaded))
	for name := range health.ModelsLoaded {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		mark := "x"
		if health.ModelsLoaded[name] {
			mark = "ok"
		}
		fmt.Printf("  [%s] %s\n", mark, name)
	}
	return nil
}

func runPredict(client *Client, imagePath, modelName string) error {
	result, err := client.Predict(imagePath, modelName)
	if err != nil {
		return err
	}
	fmt.Printf("Model: %s\n", result.Model)
	fmt.Printf("Type: %s\n", result.Type)
	if result.Type == "classification" {
		fmt.Printf("Disease: %s\n", result.Class)
		fmt.Printf("Confidence: %s\n", result.Confidence)
		fmt.Printf("Suggestion: %s\n", result.Suggestion)
	} else {
		fmt.Printf("Disease Percentage: %s%%\n", result.DiseasePercentage)
		fmt.Printf("Mask Image: [%d base64 chars]\n", len(result.MaskImage))
	}
	return nil
}
