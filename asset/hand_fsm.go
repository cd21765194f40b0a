package asset

// DefaultHandFSMConfig is the embedded transition graph of the hand
// Trigger names match hand.Register*, "Tick" marks automatic transitions
const DefaultHandFSMConfig = `
initial: Idle

states:

  # === Ability: parent of all hand states, owns the hidden reset ===
  Ability:
    transitions:
      - trigger: Reset
        target: Idle
        actions:
          - {action: Emit, args: {event: Hat}}
          - {action: HardReset}

  # --- Waiting for a cast ---
  Idle:
    parent: Ability
    transitions:
      - trigger: Cast
        target: Cycling
        actions:
          - {action: StartCycling}
      - trigger: Strong
        target: Cycling
        guard: IdleDwellElapsed
        actions:
          - {action: StartCycling}

  # --- Cards rotate on the cadence ---
  Cycling:
    parent: Ability
    on_enter:
      - {action: ResetCycleTimer}
    on_update:
      - {action: AdvanceRotation}
    transitions:
      - trigger: Tick
        target: Idle
        guard: CycleExpired
        actions:
          - {action: CycleTimeout}
      # Re-cast replaces the rotation schedule, cycle timer keeps running
      - trigger: Cast
        target: Cycling
        actions:
          - {action: StartCycling}
      - trigger: Select
        target: Selected
        actions:
          - {action: Emit, args: {event: Pick}}
          - {action: Emit, args: {event: Intermediate}}
      - trigger: Strong
        target: Selected
        guard: CycleDwellElapsed
        actions:
          - {action: Emit, args: {event: Pick}}
          - {action: Emit, args: {event: Intermediate}}

  # --- Card locked in, waiting for the throw ---
  Selected:
    parent: Ability
    on_enter:
      - {action: CancelRotation}
      - {action: ResetCommitTimer}
    transitions:
      - trigger: Tick
        target: Idle
        guard: CommitExpired
        actions:
          - {action: Emit, args: {event: Fizzle}}
          - {action: SoftReset}
      - trigger: Commit
        target: Idle
        actions:
          - {action: Emit, args: {event: Flight}}
          - {action: Emit, args: {event: Land, delayed: true}}
          - {action: Emit, args: {event: Hit, delayed: true}}
          - {action: SoftReset}
      - trigger: Strong
        target: Idle
        guard: CommitDwellElapsed
        actions:
          - {action: Emit, args: {event: Flight}}
          - {action: Emit, args: {event: Land, delayed: true}}
          - {action: Emit, args: {event: Hit, delayed: true}}
          - {action: SoftReset}
`
