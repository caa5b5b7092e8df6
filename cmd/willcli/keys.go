package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/crypto"
	"github.com/iov-one/bequest/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ed25519"
)

const keyExt = ".key"

func keysDir(home string) string {
	return filepath.Join(home, "keys")
}

func keyPath(home, name string) string {
	return filepath.Join(keysDir(home), name+keyExt)
}

// createKey generates a new private key stored under given name. Existing
// keys are never overwritten.
func createKey(home, name string) (*crypto.PrivateKey, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, errors.Wrapf(errors.ErrInput, "invalid key name %q", name)
	}
	path := keyPath(home, name)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first.
		return nil, errors.Wrapf(errors.ErrDuplicate, "private key file %q already exists", path)
	}
	if err := os.MkdirAll(keysDir(home), 0700); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}

	key := crypto.GenPrivKeyEd25519()
	if err := ioutil.WriteFile(path, key.Ed25519, 0600); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot write private key: %s", err)
	}
	return key, nil
}

func loadKey(home, name string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(keyPath(home, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "key %q", name)
		}
		return nil, errors.Wrapf(errors.ErrInput, "cannot read private key file: %s", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "invalid private key length: %d", len(raw))
	}
	return &crypto.PrivateKey{Ed25519: raw}, nil
}

func listKeys(home string) ([]string, error) {
	files, err := ioutil.ReadDir(keysDir(home))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	var names []string
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), keyExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(f.Name(), keyExt))
	}
	sort.Strings(names)
	return names, nil
}

// resolveAddress accepts either a name of a local key or any address
// format understood by bequest.ParseAddress.
func resolveAddress(home, arg string) (bequest.Address, error) {
	if key, err := loadKey(home, arg); err == nil {
		return key.PublicKey().Address(), nil
	}
	addr, err := bequest.ParseAddress(arg)
	if err != nil {
		return nil, errors.Wrapf(err, "address or key name %q", arg)
	}
	return addr, nil
}

func resolveAddresses(home string, args []string) ([]bequest.Address, error) {
	addrs := make([]bequest.Address, 0, len(args))
	for _, a := range args {
		addr, err := resolveAddress(home, a)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

func newKeysCmd(cli *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage the ed25519 keys used to sign calls",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "new <name>",
		Short: "Generate a new private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := createKey(cli.cfg.Home, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "%s\t%s\n", args[0], key.PublicKey().Address())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List local keys with their addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := listKeys(cli.cfg.Home)
			if err != nil {
				return err
			}
			for _, name := range names {
				key, err := loadKey(cli.cfg.Home, name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cli.out, "%s\t%s\n", name, key.PublicKey().Address())
			}
			return nil
		},
	})
	return cmd
}
