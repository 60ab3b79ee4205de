package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"mediassist/internal/api"
	"mediassist/internal/clinic"
	"mediassist/internal/desk"
	"mediassist/internal/editor"
	"mediassist/internal/printout"
	"mediassist/internal/validation"
)

func patientsCmd(a *app) *cobra.Command {
	return resourceCmd(a, "patients", "Manage patients", desk.Patients)
}

func doctorsCmd(a *app) *cobra.Command {
	return resourceCmd(a, "doctors", "Manage doctors", desk.Doctors)
}

func appointmentsCmd(a *app) *cobra.Command {
	return resourceCmd(a, "appointments", "Manage appointments", desk.Appointments)
}

func billingCmd(a *app) *cobra.Command {
	return resourceCmd(a, "billing", "Manage bills", desk.Billing)
}

func prescriptionsCmd(a *app) *cobra.Command {
	return resourceCmd(a, "prescriptions", "Manage prescriptions", desk.Prescriptions)
}

func medicalRecordsCmd(a *app) *cobra.Command {
	return resourceCmd(a, "medical-records", "Manage medical records", desk.MedicalRecords)
}

func resourceCmd[R clinic.Record](a *app, use, short string, open func(api.Caller, ...desk.Option) *desk.Page[R]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			return cmd.Help()
		},
	}

	mount := func(ctx context.Context) (*desk.Page[R], error) {
		page := open(a.client,
			desk.WithLogger(a.log),
			desk.WithNotifier(notifier{out: a.out, errOut: a.errOut}),
		)
		if err := page.Mount(ctx); err != nil {
			return nil, err
		}
		return page, nil
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := mount(cmd.Context())
			if err != nil {
				return err
			}
			return writeTable(a.out, page, page.Rows(search))
		},
	}
	list.Flags().StringVar(&search, "search", "", "case-insensitive name filter")

	var addSets []string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := mount(cmd.Context())
			if err != nil {
				return err
			}
			if err := page.Add(); err != nil {
				return err
			}
			return a.submit(cmd.Context(), page, addSets)
		},
	}
	add.Flags().StringArrayVar(&addSets, "set", nil, "Field=Value, repeatable")

	var editSets []string
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			page, err := mount(cmd.Context())
			if err != nil {
				return err
			}
			if err := page.Edit(id); err != nil {
				return err
			}
			return a.submit(cmd.Context(), page, editSets)
		},
	}
	edit.Flags().StringArrayVar(&editSets, "set", nil, "Field=Value, repeatable")

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			page, err := mount(cmd.Context())
			if err != nil {
				return err
			}
			var confirm editor.Confirmer = promptConfirmer{in: bufio.NewReader(a.in), out: a.out}
			if yes {
				confirm = editor.ConfirmFunc(func(context.Context, editor.Prompt) (bool, error) {
					return true, nil
				})
			}
			attempted, err := page.Delete(cmd.Context(), id, confirm)
			if err != nil {
				if attempted {
					return errReported
				}
				return err
			}
			if !attempted {
				fmt.Fprintln(a.out, "Canceled.")
			}
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	cmd.AddCommand(list, add, edit, del)

	var zero R
	switch zero.Kind() {
	case clinic.KindAppointment, clinic.KindBilling, clinic.KindPrescription:
		cmd.AddCommand(printCmd(a, mount))
	}
	return cmd
}

func printCmd[R clinic.Record](a *app, mount func(context.Context) (*desk.Page[R], error)) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "print <id>",
		Short: "Render a printable HTML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			page, err := mount(cmd.Context())
			if err != nil {
				return err
			}
			doc, err := page.Print(id)
			if err != nil {
				return err
			}
			if out == "" {
				return printout.Render(a.out, doc)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := printout.Render(f, doc); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	return cmd
}

type draftPage interface {
	Set(field, raw string) error
	Submit(ctx context.Context) error
}

// submit applies the assignments to the open draft and saves it. Validation
// errors print one line per field; save failures were already announced by
// the notifier.
func (a *app) submit(ctx context.Context, page draftPage, sets []string) error {
	pairs, err := parseAssignments(sets)
	if err != nil {
		return err
	}
	for _, p := range pairs {
		if err := page.Set(p[0], p[1]); err != nil {
			return err
		}
	}

	err = page.Submit(ctx)
	if err == nil {
		return nil
	}
	var invalid *validation.Error
	if errors.As(err, &invalid) {
		a.printErrors(invalid.Fields)
		return errReported
	}
	var rejected *api.RejectedError
	if errors.Is(err, api.ErrTransport) || errors.As(err, &rejected) {
		return errReported
	}
	return err
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a record id", s)
	}
	return id, nil
}
