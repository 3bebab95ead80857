package main

import (
	"errors"
	"fmt"
	"strings"

	"travel-planner-workers/internal/planner"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func classifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <message>",
		Short: "Classify a message as greeting, incomplete or complete",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := planner.Classify(strings.Join(args, " "))

			var b strings.Builder
			fmt.Fprintf(&b, "%s %s", color.CyanString("intent:"), result.Intent)
			for _, field := range result.MissingFields {
				fmt.Fprintf(&b, "\n  %s %s", color.YellowString("missing:"), field)
			}
			if result.Intent == planner.IntentGreeting {
				fmt.Fprintf(&b, "\n\n%s", result.GreetingResponse)
			}
			if result.ClarifyingSuggestion != "" {
				fmt.Fprintf(&b, "\n\n%s", result.ClarifyingSuggestion)
			}
			return emit(cmd.OutOrStdout(), opts, result, b.String())
		},
	}
}

func hotelCmd(opts *rootOptions) *cobra.Command {
	var (
		city   string
		days   int
		budget float64
	)
	cmd := &cobra.Command{
		Use:   "hotel",
		Short: "Estimate accommodation cost for a stay",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkDays(days); err != nil {
				return err
			}
			est := planner.EstimateHotel(city, days, budget)
			return emit(cmd.OutOrStdout(), opts, est, est.Breakdown)
		},
	}
	cmd.Flags().StringVar(&city, "city", "", "Destination city")
	cmd.Flags().IntVar(&days, "days", 0, "Number of nights")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Total trip budget in INR")
	_ = cmd.MarkFlagRequired("city")
	_ = cmd.MarkFlagRequired("days")
	return cmd
}

func transportCmd(opts *rootOptions) *cobra.Command {
	var origin, destination string
	cmd := &cobra.Command{
		Use:   "transport",
		Short: "Estimate round-trip flight and local transport cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			est := planner.EstimateTransport(origin, destination)
			text := fmt.Sprintf("%s → %s: %s, total %d %s",
				est.Origin, est.Destination, est.Breakdown, est.TotalTransportEstimate, est.Currency)
			return emit(cmd.OutOrStdout(), opts, est, text)
		},
	}
	cmd.Flags().StringVar(&origin, "origin", planner.DefaultOrigin, "Departure city")
	cmd.Flags().StringVar(&destination, "destination", "", "Destination city")
	_ = cmd.MarkFlagRequired("destination")
	return cmd
}

func budgetCmd(opts *rootOptions) *cobra.Command {
	var total, hotel, transport float64
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Split a budget into fixed costs, activities and food",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := planner.AllocateBudget(total, hotel, transport)

			status := color.GreenString("within budget")
			if !a.WithinBudget {
				status = color.RedString("over budget")
			}
			text := fmt.Sprintf("fixed %.2f (%s), remaining %.2f: activities %.2f, food %.2f",
				a.FixedTotal, status, a.RemainingBudget, a.SuggestedActivities, a.SuggestedFood)
			return emit(cmd.OutOrStdout(), opts, a, text)
		},
	}
	cmd.Flags().Float64Var(&total, "total", 0, "Total budget in INR")
	cmd.Flags().Float64Var(&hotel, "hotel", 0, "Hotel cost in INR")
	cmd.Flags().Float64Var(&transport, "transport", 0, "Transport cost in INR")
	_ = cmd.MarkFlagRequired("total")
	return cmd
}

func itineraryCmd(opts *rootOptions) *cobra.Command {
	var (
		destination string
		days        int
		attractions []string
	)
	cmd := &cobra.Command{
		Use:   "itinerary",
		Short: "Distribute attractions over days and render the itinerary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkDays(days); err != nil {
				return err
			}
			names := planner.AttractionList(attractions...).Names()
			plans := planner.BuildDayPlans(names, days)
			text := planner.RenderItinerary(destination, plans, days)
			out := map[string]interface{}{"itinerary": text, "dayPlans": plans}
			return emit(cmd.OutOrStdout(), opts, out, text)
		},
	}
	cmd.Flags().StringVar(&destination, "destination", "", "Destination name")
	cmd.Flags().IntVar(&days, "days", 0, "Number of days")
	cmd.Flags().StringSliceVar(&attractions, "attractions", nil, "Comma-separated attractions")
	_ = cmd.MarkFlagRequired("destination")
	_ = cmd.MarkFlagRequired("days")
	return cmd
}

func planCmd(opts *rootOptions) *cobra.Command {
	var req planner.PlanRequest
	var attractions []string
	cmd := &cobra.Command{
		Use:   "plan <message>",
		Short: "Run the whole planning pipeline for a message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Message = strings.Join(args, " ")
			req.Attractions = planner.AttractionList(attractions...)

			result, err := planner.Plan(req, planner.DefaultOrigin)
			if errors.Is(err, planner.ErrPlanDetailsMissing) {
				return fmt.Errorf("%w (use --destination and --days)", err)
			}
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), opts, result, result.Reply)
		},
	}
	cmd.Flags().StringVar(&req.Destination, "destination", "", "Destination city")
	cmd.Flags().StringVar(&req.Origin, "origin", "", "Departure city (default "+planner.DefaultOrigin+")")
	cmd.Flags().IntVar(&req.Days, "days", 0, "Number of days")
	cmd.Flags().Float64Var(&req.Budget, "budget", 0, "Total budget in INR")
	cmd.Flags().StringSliceVar(&attractions, "attractions", nil, "Comma-separated attractions")
	return cmd
}

func checkDays(days int) error {
	if days > planner.MaxTripDays {
		return fmt.Errorf("--days must be at most %d", planner.MaxTripDays)
	}
	return nil
}
