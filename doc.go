/*
Package canvass is a survey engine whose questions, branching logic, and
step flow are driven entirely by a JSON (or YAML) definition. It tracks
partial responses, evaluates per-question visibility conditions against
those responses, gates step navigation on required questions, persists
resume state across restarts, and assembles the final submission payload.

The engine deliberately knows nothing about question types: rendering a
radio group, a Likert table, or a ranking widget is the host's job. The
host reads the definition, asks ShouldShowQuestion what to draw, records
input via SaveResponse, and drives navigation with NextStep/PrevStep.

# Architecture

Canvass follows a Hexagonal layout. The core in internal/runtime works
purely against the interfaces in pkg/ports:

  - DefinitionSource: where survey definitions come from (HTTP, file, memory).
  - ResumeStore: where the two resume slots live (memory, file, Redis).
  - Submitter: where finished surveys go.
  - IdentityProvider: who to attribute a submission to.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/canvass"
		"github.com/aretw0/canvass/pkg/adapters/file"
	)

	func main() {
		session := canvass.New(file.NewSource(),
			canvass.WithSessionID("kiosk-7"),
			canvass.WithStore(file.NewStore("")),
		)

		ctx := context.Background()
		if err := session.Load(ctx, "survey.json"); err != nil {
			log.Fatal(err)
		}

		// Main loop: render current step -> collect input -> advance.
		for {
			step := session.CurrentStep()
			for _, q := range step.Questions {
				if !session.ShouldShowQuestion(&q) {
					continue
				}
				// ... prompt, then:
				session.SaveResponse(ctx, q.ID, "an answer", "")
			}
			if !session.HasNextStep() {
				break
			}
			if !session.NextStep(ctx) {
				log.Println("missing required:", session.MissingRequired())
			}
		}

		if _, err := session.Submit(ctx); err != nil {
			log.Fatal(err)
		}
	}
*/
package canvass
