package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/nbodysim/internal/compute"
	"github.com/san-kum/nbodysim/internal/nbody"
	"github.com/san-kum/nbodysim/internal/viz"
)

func runLive(cmd *cobra.Command, args []string) error {
	backend, err := compute.Get(liveBackend)
	if err != nil {
		return err
	}
	defer backend.Close()

	m := viz.NewModel(backend, nbody.InitialState(), viz.LiveOptions{
		StepsPerFrame: stepsPerFrame,
		TrailLength:   trailLength,
		FPS:           frameRate,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = p.Run()
	return err
}
