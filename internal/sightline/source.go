package sightline

// Controller owns the source position and heading and applies input commands
// to them. Rotation re-aims the ray fan it was built with.
type Controller struct {
	pos     Point
	heading float64
	dir     Point

	field *RayField

	width, height float64
	margin        float64
	angleFactor   float64
	moveSpeed     float64
	raySpeed      float64
	clearance     float64

	quit bool
}

// NewController places a source at start facing heading and aims field to
// match.
func NewController(cfg Config, start Point, heading float64, field *RayField) *Controller {
	c := &Controller{
		pos:         start,
		field:       field,
		width:       float64(cfg.Width),
		height:      float64(cfg.Height),
		margin:      cfg.BorderMargin,
		angleFactor: cfg.AngleFactor,
		moveSpeed:   cfg.MoveSpeed,
		raySpeed:    cfg.RaySpeed,
		clearance:   cfg.MoveClearance(),
	}
	c.turn(heading)
	return c
}

// AllowMove reports whether the source currently has clearance to move.
func (c *Controller) AllowMove(grid Obstacles) bool {
	return grid.CheckClear(c.pos, c.clearance)
}

// Apply executes cmds in fixed order: backward, forward, right, left, quit.
// allowMove must be sampled once per tick, before Apply.
func (c *Controller) Apply(cmds Commands, allowMove bool) {
	if cmds.Has(MoveBackward) {
		c.move(-1, allowMove)
	}
	if cmds.Has(MoveForward) {
		c.move(1, allowMove)
	}
	if cmds.Has(RotateRight) {
		c.turn(c.heading + c.angleFactor)
	}
	if cmds.Has(RotateLeft) {
		c.turn(c.heading - c.angleFactor)
	}
	if cmds.Has(Quit) {
		c.quit = true
	}
}

// move steps along the heading (sense +1) or against it (sense -1). A
// blocked source is pushed one full direction vector the other way instead.
func (c *Controller) move(sense float64, allowMove bool) {
	step := c.dir.Scale(sense / c.moveSpeed)
	next := c.pos.Add(step)
	if next.X <= c.margin || next.X >= c.width-c.margin ||
		next.Y <= c.margin || next.Y >= c.height-c.margin {
		return
	}
	if allowMove {
		c.pos = next
		return
	}
	c.pos = c.pos.Sub(c.dir.Scale(sense))
}

func (c *Controller) turn(heading float64) {
	c.heading = NormalizeAngle(heading)
	c.dir = unitDirection(c.heading, c.raySpeed)
	if c.field != nil {
		c.field.Aim(c.heading)
	}
}

// Position returns the source position.
func (c *Controller) Position() Point { return c.pos }

// Heading returns the heading in [0, 2π).
func (c *Controller) Heading() float64 { return c.heading }

// Direction returns the heading unit vector scaled by the ray speed.
func (c *Controller) Direction() Point { return c.dir }

// Quit reports whether a quit command has been applied.
func (c *Controller) Quit() bool { return c.quit }
