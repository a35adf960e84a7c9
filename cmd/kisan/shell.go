package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"kisanmandi/internal/app"
	"kisanmandi/internal/inventory"
	"kisanmandi/internal/product"
	"kisanmandi/internal/store"
	"kisanmandi/internal/user"
	"kisanmandi/internal/utils"
)

const shellHelp = `commands:
  login <farmer|buyer|guest> [phone otp]   start a session
  logout                                   end the session
  whoami                                   show the current user
  profile <field>=<value> ...              update name, phone, location, land, crops
  lang <en|hi|pa>                          switch language
  market | catalog                         list products
  add <product-id> | remove <product-id>   edit the cart
  cart | clear                             show or empty the cart
  checkout                                 place an order
  orders                                   order history
  stock [name qty price unit [loss]]       list or add inventory (farmers)
  weather | status                         weather and connectivity
  stats                                    session counters
  recommend [topic]                        loans, schemes and laws
  translate <text>                         translate into the session language
  voice                                    speak a command
  quit`

type lineReader interface {
	ReadLine() (string, error)
}

type shell struct {
	app   *app.App
	lines lineReader
	out   io.Writer
}

func newShell(a *app.App, lines lineReader, out io.Writer) *shell {
	return &shell{app: a, lines: lines, out: out}
}

func (s *shell) run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Kisan Mandi. Type 'help' for commands.")
	if u := s.app.User(); u != nil {
		fmt.Fprintf(s.out, "Welcome back, %s.\n", u.Name)
	}

	for {
		fmt.Fprint(s.out, "> ")
		line, err := s.lines.ReadLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}
		if quit := s.exec(ctx, line); quit {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// exec runs one command line and reports whether the shell should exit.
func (s *shell) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	var err error
	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(s.out, shellHelp)
	case "login":
		err = s.login(ctx, args)
	case "logout":
		err = s.app.Logout(ctx)
		if err == nil {
			fmt.Fprintln(s.out, "logged out")
		}
	case "whoami":
		printUser(s.out, s.app.User())
	case "profile":
		err = s.profile(ctx, args)
	case "lang":
		if len(args) != 1 {
			err = errors.New("usage: lang <en|hi|pa>")
			break
		}
		err = s.app.SetLanguage(ctx, user.Language(strings.ToLower(args[0])))
	case "market":
		printProducts(s.out, s.app.Marketplace())
	case "catalog":
		printProducts(s.out, s.app.Catalog())
	case "add":
		err = s.eachArg(args, func(id string) error {
			item, err := s.app.AddToCartByID(ctx, id)
			if err == nil {
				fmt.Fprintf(s.out, "%s x%d in cart\n", item.Name, item.CartQuantity)
			}
			return err
		})
	case "remove":
		err = s.eachArg(args, func(id string) error {
			if !s.app.RemoveFromCart(ctx, id) {
				fmt.Fprintf(s.out, "%s was not in the cart\n", id)
			}
			return nil
		})
	case "cart":
		printCart(s.out, s.app.Cart())
	case "clear":
		s.app.ClearCart(ctx)
	case "checkout":
		o, placeErr := s.app.PlaceOrder(ctx)
		if o != nil {
			fmt.Fprintf(s.out, "order %s placed, total Rs %.2f\n", o.ID, o.Total)
		}
		err = placeErr
	case "orders":
		printOrders(s.out, s.app.Orders())
	case "stock":
		err = s.stock(ctx, args)
	case "weather":
		printWeather(s.out, s.app.Weather(ctx))
	case "status":
		state := "offline"
		if s.app.Online() {
			state = "online"
		}
		fmt.Fprintf(s.out, "%s, language %s\n", state, s.app.Language())
	case "stats":
		printMetrics(s.out, s.app.Metrics().Counters())
	case "recommend":
		printRecommendations(s.out, s.app.Recommendations(ctx, strings.Join(args, " ")))
	case "translate":
		fmt.Fprintln(s.out, s.app.Translate(ctx, strings.Join(args, " ")))
	case "voice":
		res, listenErr := s.app.Listen(ctx)
		if listenErr == nil {
			fmt.Fprintf(s.out, "heard %q -> %s\n", res.Transcript, res.Command.Action)
		}
		err = listenErr
	default:
		err = fmt.Errorf("unknown command %q, try 'help'", cmd)
	}

	s.report(err)
	return false
}

func (s *shell) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotPersisted):
		fmt.Fprintln(s.out, "warning: saved for this session only, storage is unavailable")
	default:
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
}

func (s *shell) eachArg(args []string, fn func(string) error) error {
	if len(args) == 0 {
		return errors.New("missing product id")
	}
	for _, a := range args {
		if err := fn(a); err != nil {
			return err
		}
	}
	return nil
}

func (s *shell) login(ctx context.Context, args []string) error {
	if len(args) != 1 && len(args) != 3 {
		return errors.New("usage: login <farmer|buyer|guest> [phone otp]")
	}
	role := user.Role(strings.ToUpper(args[0]))

	var (
		u   *user.User
		err error
	)
	if len(args) == 3 {
		u, err = s.app.LoginWithOTP(ctx, role, args[1], args[2])
	} else {
		u, err = s.app.Login(ctx, role, "")
	}
	if u != nil {
		fmt.Fprintf(s.out, "Namaste, %s.\n", u.Name)
	}
	return err
}

func (s *shell) profile(ctx context.Context, args []string) error {
	var p user.UpdateProfileParams
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("expected field=value, got %q", arg)
		}
		value = strings.ReplaceAll(value, "_", " ")
		switch strings.ToLower(key) {
		case "name":
			p.Name = utils.StrPtr(value)
		case "phone":
			p.Phone = utils.StrPtr(value)
		case "location":
			p.Location = utils.StrPtr(value)
		case "land":
			p.LandSize = utils.StrPtr(value)
		case "crops":
			crops := utils.SplitList(value)
			p.PrimaryCrops = &crops
		case "avatar":
			p.Avatar = utils.StrPtr(value)
		default:
			return fmt.Errorf("unknown profile field %q", key)
		}
	}

	u, err := s.app.UpdateProfile(ctx, p)
	if u != nil {
		printUser(s.out, u)
	}
	return err
}

func (s *shell) stock(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printInventory(s.out, s.app.Inventory())
		return nil
	}
	if len(args) < 4 || len(args) > 5 {
		return errors.New("usage: stock <name> <qty> <price> <unit> [loss]")
	}

	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}
	price, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("invalid price %q", args[2])
	}

	item := inventory.Item{Product: product.Product{
		Name:     strings.ReplaceAll(args[0], "_", " "),
		Category: product.CategoryCrop,
		Price:    price,
		Unit:     args[3],
		Quantity: qty,
	}}
	if u := s.app.User(); u != nil {
		item.SellerID = u.ID
	}
	if len(args) == 5 {
		loss, err := strconv.ParseFloat(args[4], 64)
		if err != nil {
			return fmt.Errorf("invalid loss %q", args[4])
		}
		item.LossRecord = &loss
	}

	added, err := s.app.AddToInventory(ctx, item)
	if added.ID != "" {
		fmt.Fprintf(s.out, "added %s (%s)\n", added.Name, added.ID)
	}
	return err
}
