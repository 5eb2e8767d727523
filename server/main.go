package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meikuraledutech/planflow"
	"github.com/meikuraledutech/planflow/editor"
	"github.com/meikuraledutech/planflow/geometry"
	"github.com/meikuraledutech/planflow/postgres"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	var store planflow.Store = postgres.New(pool)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	generateID := func(prefix string) string { return prefix + "-" + uuid.NewString() }

	app := fiber.New()

	app.Use(func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start),
		)
		return err
	})

	// load fetches a task's details, treating a missing record as an
	// empty one so mutations can bootstrap a task.
	load := func(c fiber.Ctx, taskID string) (*planflow.TaskDetails, bool) {
		d, err := store.GetDetails(c.Context(), taskID)
		if err != nil {
			_ = c.Status(500).JSON(fiber.Map{"error": err.Error()})
			return nil, false
		}
		if d == nil {
			d = &planflow.TaskDetails{}
		}
		return d, true
	}

	// geomFor applies the task's canvas override to the reference
	// geometry.
	geomFor := func(d *planflow.TaskDetails) geometry.Config {
		return geometry.DefaultConfig().WithCanvas(d.Canvas)
	}

	// ── Schema ────────────────────────────────────────────────────────
	app.Post("/schema", func(c fiber.Ctx) error {
		if err := store.CreateSchema(c.Context()); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "schema created"})
	})

	app.Delete("/schema", func(c fiber.Ctx) error {
		if err := store.DropSchema(c.Context()); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "schema dropped"})
	})

	// ── Details snapshots ─────────────────────────────────────────────
	app.Get("/tasks", func(c fiber.Ctx) error {
		ids, err := store.ListTaskIDs(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(ids)
	})

	app.Get("/tasks/:id/details", func(c fiber.Ctx) error {
		d, err := store.GetDetails(c.Context(), c.Params("id"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if d == nil {
			return c.Status(404).JSON(fiber.Map{"error": "task details not found"})
		}
		return c.JSON(d)
	})

	app.Put("/tasks/:id/details", func(c fiber.Ctx) error {
		var d planflow.TaskDetails
		if err := c.Bind().JSON(&d); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		if err := store.SaveDetails(c.Context(), c.Params("id"), &d); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	app.Delete("/tasks/:id/details", func(c fiber.Ctx) error {
		if err := store.DeleteDetails(c.Context(), c.Params("id")); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	// ── Sub-steps ─────────────────────────────────────────────────────
	app.Post("/tasks/:id/substeps", func(c fiber.Ctx) error {
		var body struct {
			Text string `json:"text"`
		}
		if err := c.Bind().JSON(&body); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		d, ok := load(c, c.Params("id"))
		if !ok {
			return nil
		}
		pos := geomFor(d).GridSlot(len(d.SubSteps))
		step := planflow.SubStep{
			ID:       generateID("substep"),
			Text:     body.Text,
			Position: &pos,
		}
		d.SubSteps = append(d.SubSteps, step)
		if err := store.SaveDetails(c.Context(), c.Params("id"), d); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(201).JSON(step)
	})

	app.Put("/tasks/:id/substeps/:sid", func(c fiber.Ctx) error {
		var step planflow.SubStep
		if err := c.Bind().JSON(&step); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		d, ok := load(c, c.Params("id"))
		if !ok {
			return nil
		}
		sid := c.Params("sid")
		found := false
		d.SubSteps = d.SubSteps.WithNode(sid, func(planflow.SubStep) planflow.SubStep {
			found = true
			step.ID = sid
			// A replacement may not introduce a self-loop.
			next := step.NextSubStepIDs[:0:0]
			for _, nid := range step.NextSubStepIDs {
				if nid != sid {
					next = append(next, nid)
				}
			}
			step.NextSubStepIDs = next
			return step
		})
		if !found {
			return c.Status(404).JSON(fiber.Map{"error": "sub-step not found"})
		}
		if err := store.SaveDetails(c.Context(), c.Params("id"), d); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	app.Put("/tasks/:id/substeps/:sid/position", func(c fiber.Ctx) error {
		var p planflow.Point
		if err := c.Bind().JSON(&p); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		d, ok := load(c, c.Params("id"))
		if !ok {
			return nil
		}
		pos := geomFor(d).Clamp(p)
		found := false
		d.SubSteps = d.SubSteps.WithNode(c.Params("sid"), func(s planflow.SubStep) planflow.SubStep {
			found = true
			s.Position = &pos
			return s
		})
		if !found {
			return c.Status(404).JSON(fiber.Map{"error": "sub-step not found"})
		}
		if err := store.SaveDetails(c.Context(), c.Params("id"), d); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(pos)
	})

	app.Delete("/tasks/:id/substeps/:sid", func(c fiber.Ctx) error {
		d, ok := load(c, c.Params("id"))
		if !ok {
			return nil
		}
		d.SubSteps = d.SubSteps.WithoutNode(c.Params("sid"))
		if err := store.SaveDetails(c.Context(), c.Params("id"), d); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	// ── Connections ───────────────────────────────────────────────────
	app.Post("/tasks/:id/connections", func(c fiber.Ctx) error {
		var body struct {
			SourceID string `json:"sourceId"`
			TargetID string `json:"targetId"`
		}
		if err := c.Bind().JSON(&body); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		if body.SourceID == body.TargetID {
			return c.Status(422).JSON(fiber.Map{"error": planflow.ErrSelfLoop.Error()})
		}
		d, ok := load(c, c.Params("id"))
		if !ok {
			return nil
		}
		if _, ok := d.SubSteps.Find(body.SourceID); !ok {
			return c.Status(404).JSON(fiber.Map{"error": "source sub-step not found"})
		}
		if _, ok := d.SubSteps.Find(body.TargetID); !ok {
			return c.Status(404).JSON(fiber.Map{"error": "target sub-step not found"})
		}
		d.SubSteps = d.SubSteps.WithEdge(body.SourceID, body.TargetID)
		if err := store.SaveDetails(c.Context(), c.Params("id"), d); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(201)
	})

	app.Delete("/tasks/:id/connections/:source/:target", func(c fiber.Ctx) error {
		d, ok := load(c, c.Params("id"))
		if !ok {
			return nil
		}
		d.SubSteps = d.SubSteps.WithoutEdge(c.Params("source"), c.Params("target"))
		if err := store.SaveDetails(c.Context(), c.Params("id"), d); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	// ── Derived geometry ──────────────────────────────────────────────
	app.Get("/tasks/:id/connectors", func(c fiber.Ctx) error {
		d, err := store.GetDetails(c.Context(), c.Params("id"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if d == nil {
			return c.Status(404).JSON(fiber.Map{"error": "task details not found"})
		}
		return c.JSON(geometry.Connectors(d.SubSteps, geomFor(d)))
	})

	app.Post("/tasks/:id/layout", func(c fiber.Ctx) error {
		d, ok := load(c, c.Params("id"))
		if !ok {
			return nil
		}
		d.SubSteps = geometry.AutoLayout(d.SubSteps, geomFor(d))
		if err := store.SaveDetails(c.Context(), c.Params("id"), d); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(d.SubSteps)
	})

	// ── Proposal acceptance ───────────────────────────────────────────
	app.Post("/tasks/:id/proposals", func(c fiber.Ctx) error {
		var set editor.ProposalSet
		if err := c.Bind().JSON(&set); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		d, ok := load(c, c.Params("id"))
		if !ok {
			return nil
		}
		steps, created, err := editor.ApplyProposals(d.SubSteps, set, generateID, geomFor(d))
		if errors.Is(err, planflow.ErrUnknownProposalRef) {
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		d.SubSteps = steps
		if err := store.SaveDetails(c.Context(), c.Params("id"), d); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(201).JSON(created)
	})

	// ── Action item overview ──────────────────────────────────────────
	app.Get("/tasks/:id/action-items", func(c fiber.Ctx) error {
		d, err := store.GetDetails(c.Context(), c.Params("id"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if d == nil {
			return c.Status(404).JSON(fiber.Map{"error": "task details not found"})
		}
		completed, total := d.ActionItemProgress()
		return c.JSON(fiber.Map{
			"completed": completed,
			"total":     total,
			"items":     d.ActionItemRows(fiber.Query[string](c, "substep")),
		})
	})

	log.Fatal(app.Listen(":3000"))
}
