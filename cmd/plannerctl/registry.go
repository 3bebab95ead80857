package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"travel-planner-workers/internal/common/config"
	"travel-planner-workers/pkg/registry"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const defaultRegistryPath = "configs/activity-registry.json"

func registryCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect and edit the activity registry",
	}
	cmd.PersistentFlags().StringVar(&path, "path", defaultRegistryPath, "Path to registry file")

	cmd.AddCommand(
		registryValidateCmd(&path),
		registryListCmd(&path),
		registryAddCmd(&path),
		registryUpdateCmd(&path),
	)
	return cmd
}

func registryValidateCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check required fields, uniqueness and coverage of served task types",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			reg, err := registry.LoadRegistry(*path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := reg.Validate(); err != nil {
				printStatus(out, "✗", err.Error(), color.FgRed)
				return fmt.Errorf("registry validation failed")
			}

			missing := 0
			for _, taskType := range config.TaskTypes {
				if _, ok := reg.FindByTaskType(taskType); !ok {
					printStatus(out, "✗", "no activity for task type "+taskType, color.FgRed)
					missing++
				}
			}
			if missing > 0 {
				return fmt.Errorf("registry is missing %d task types", missing)
			}

			printStatus(out, "✓", fmt.Sprintf("Registry validation passed. Found %d activities.", len(reg.Activities)), color.FgGreen)
			return nil
		},
	}
}

func registryListCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(*path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TASK TYPE\tSTATUS\tRETRIES\tENDPOINT")
			for _, a := range reg.Activities {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", a.TaskType, a.ImplementationStatus, a.Retries, a.Endpoint)
			}
			return w.Flush()
		},
	}
}

func registryAddCmd(path *string) *cobra.Command {
	var a registry.Activity
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(*path)
			if os.IsNotExist(err) {
				reg, err = registry.New(), nil
			}
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}

			if a.TaskType == "" {
				a.TaskType = a.ID
			}
			a.InputSchema = map[string]interface{}{}
			a.OutputSchema = map[string]interface{}{}
			a.ErrorCodes = []string{}
			a.Workflows = []string{}
			a.Tags = []string{}

			if err := reg.Add(a); err != nil {
				return err
			}
			if err := reg.Save(*path); err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), "✓", "Added activity: "+a.ID, color.FgGreen)
			return nil
		},
	}
	cmd.Flags().StringVar(&a.ID, "id", "", "Activity ID")
	cmd.Flags().StringVar(&a.DisplayName, "display-name", "", "Display name")
	cmd.Flags().StringVar(&a.Description, "description", "", "Description")
	cmd.Flags().StringVar(&a.Category, "category", "", "Category")
	cmd.Flags().StringVar(&a.TaskType, "task-type", "", "Zeebe task type (defaults to the ID)")
	cmd.Flags().StringVar(&a.Endpoint, "endpoint", "", "HTTP route serving the activity")
	cmd.Flags().StringVar(&a.Version, "version", "1.0.0", "Version")
	cmd.Flags().StringVar(&a.ImplementationStatus, "status", "planned", "Implementation status")
	cmd.Flags().StringVar(&a.Timeout, "timeout", "10s", "Job timeout")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("display-name")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func registryUpdateCmd(path *string) *cobra.Command {
	var id, field, value string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update one field of an activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(*path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := reg.Update(id, field, value); err != nil {
				return err
			}
			if err := reg.Save(*path); err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), "✓", fmt.Sprintf("Updated activity %s, field %s to %s", id, field, value), color.FgGreen)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Activity ID")
	cmd.Flags().StringVar(&field, "field", "", "Field to update (status, version, displayName, description, category, taskType, timeout, retries)")
	cmd.Flags().StringVar(&value, "value", "", "New value")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}
